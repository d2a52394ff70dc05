package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/log"
	inOtel "github.com/Alturino/grocery/internal/otel"
	"github.com/Alturino/grocery/internal/repository"
	"github.com/Alturino/grocery/internal/storage"
	"github.com/Alturino/grocery/product/internal/cache"
	"github.com/Alturino/grocery/product/internal/image"
	"github.com/Alturino/grocery/product/internal/otel"
	"github.com/Alturino/grocery/product/pkg/request"
	"github.com/Alturino/grocery/product/pkg/response"
)

const productsPath = "/products"

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *cache.ProductCache
	blob    *storage.Blob
	deriver *image.Deriver
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *cache.ProductCache,
	blob *storage.Blob,
) *ProductService {
	return &ProductService{
		pool:    pool,
		queries: queries,
		cache:   cache,
		blob:    blob,
		deriver: image.NewDeriver(blob),
	}
}

func (svc *ProductService) InsertProduct(c context.Context, param request.Product) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Str(log.KeySubcategory, param.SubcategoryID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "deriving slug").Logger()
	productSlug, err := slugOrDerive(param.Slug, param.Name)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Str(log.KeySlug, productSlug).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting product to database").Logger()
	logger.Info().Msg("inserting product to database")
	span.AddEvent("inserting product to database")
	row, err := repository.WithTx(c, svc.pool, svc.queries,
		func(q *repository.Queries) (repository.FindProductByIdRow, error) {
			product, err := q.InsertProduct(c, repository.InsertProductParams{
				ID:            uuid.New(),
				SubcategoryID: param.SubcategoryID,
				Name:          param.Name,
				Slug:          productSlug,
				Price:         repository.DecimalToNumeric(param.Price),
			})
			if err != nil {
				return repository.FindProductByIdRow{}, fmt.Errorf("failed inserting product with error=%w", err)
			}
			return q.FindProductById(c, product.ID)
		},
	)
	if err != nil {
		err = fmt.Errorf("failed inserting product to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product := response.NewProduct(row)
	logger = logger.With().Str(log.KeyProductID, product.ID.String()).Logger()
	span.AddEvent("inserted product to database")
	logger.Info().Msg("inserted product to database")

	return product, nil
}

func (svc *ProductService) FindProducts(c context.Context, page int) (response.Page[response.View], error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts", trace.WithAttributes(attribute.Int(log.KeyPage, page)))
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Int(log.KeyPage, page).
		Logger()

	if page < 1 {
		err := inErrors.InvalidArgument("page=%d must be at least 1", page)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Page[response.View]{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "counting products").Logger()
	logger.Trace().Msg("counting products")
	count, err := svc.queries.CountProducts(c)
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Page[response.View]{}, err
	}
	if page > response.LastPage(count) {
		err := inErrors.NotFound(fmt.Errorf("page=%d is past the last page", page))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Page[response.View]{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in database").Logger()
	logger.Trace().Msg("finding products in database")
	span.AddEvent("finding products in database")
	rows, err := svc.queries.FindProducts(c, repository.FindProductsParams{
		Limit:  response.PageSize,
		Offset: int32((page - 1) * response.PageSize),
	})
	if err != nil {
		err = fmt.Errorf("failed finding products in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Page[response.View]{}, err
	}
	span.AddEvent("found products in database")
	logger.Info().Int(log.KeyProducts, len(rows)).Msg("found products in database")

	return response.NewPage(productsPath, page, count, response.Views(response.NewProducts(rows))), nil
}

func (svc *ProductService) FindProductById(c context.Context, id uuid.UUID) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cache.ProductKey(id)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	product, found, err := svc.cache.Get(c, id)
	if err != nil {
		logger.Warn().Err(err).Msg(err.Error())
	}
	if found {
		span.AddEvent("found product in cache")
		logger.Debug().Msg("found product in cache")
		return product, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	row, err := svc.queries.FindProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product in database with error=%w", repository.Classify(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product = response.NewProduct(row)
	span.AddEvent("found product in database")
	logger.Info().Msg("found product in database")

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	written, err := svc.cache.Set(c, product)
	if err != nil {
		logger.Warn().Err(err).Msg(err.Error())
	}
	if err == nil && !written {
		logger.Debug().Msg("cache holds a newer product")
	}

	return product, nil
}

// UploadImage stores a new original for the product and regenerates its
// variants. Every upload writes into its own directory, so the files the row
// references are never touched before the new set is committed. The four
// image columns change together in one statement while the product row is
// locked, and the previous set is removed only after commit.
func (svc *ProductService) UploadImage(
	c context.Context,
	productID uuid.UUID,
	filename string,
	r io.Reader,
) (response.Product, error) {
	c, span := otel.Tracer.Start(
		c,
		"ProductService UploadImage",
		trace.WithAttributes(
			attribute.String(log.KeyProductID, productID.String()),
			attribute.String(log.KeyFilename, filename),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UploadImage").
		Str(log.KeyProductID, productID.String()).
		Str(log.KeyFilename, filename).
		Logger()

	ext := image.Ext(filename)
	if ext == "" {
		err := inErrors.InvalidArgument("filename=%q has no extension", filename)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "decoding image").Logger()
	logger.Trace().Msg("decoding image")
	raw, err := io.ReadAll(r)
	if err != nil {
		err = inErrors.Processing(fmt.Errorf("failed reading image with error=%w", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	img, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("decoded image")

	var (
		previous repository.Product
		written  []string
		upload   = uuid.NewString()
	)
	logger = logger.With().
		Str(log.KeyProcess, "storing images").
		Str(log.KeyUpload, upload).
		Logger()
	logger.Info().Msg("storing images")
	updated, err := repository.WithTx(c, svc.pool, svc.queries,
		func(q *repository.Queries) (repository.Product, error) {
			locked, err := q.LockProductById(c, productID)
			if err != nil {
				return repository.Product{}, fmt.Errorf("failed locking productId=%s with error=%w", productID.String(), err)
			}
			previous = locked

			original := image.Path(locked.Slug, upload, image.VariantOriginal, ext)
			if err := svc.blob.Put(original, bytes.NewReader(raw)); err != nil {
				return repository.Product{}, inErrors.Processing(fmt.Errorf("failed storing original with error=%w", err))
			}
			written = append(written, original)

			variants, err := svc.deriver.DeriveVariants(c, image.Source{
				Image:  img,
				Slug:   locked.Slug,
				Upload: upload,
				Ext:    ext,
			})
			if err != nil {
				return repository.Product{}, err
			}
			written = append(written, variants.Paths()...)

			return q.UpdateProductImages(c, repository.UpdateProductImagesParams{
				ID:            productID,
				ImageOriginal: repository.StringToText(original),
				ImageLarge:    repository.StringToText(variants.Large),
				ImageMedium:   repository.StringToText(variants.Medium),
				ImageSmall:    repository.StringToText(variants.Small),
			})
		},
	)
	if err != nil {
		svc.removeFiles(c, written)
		err = fmt.Errorf("failed storing images with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("stored images")
	logger.Info().Strs(log.KeyImagePath, imagePaths(updated)).Msg("stored images")

	svc.removeFiles(c, imagePaths(previous))

	logger = logger.With().Str(log.KeyProcess, "finding updated product").Logger()
	row, err := svc.queries.FindProductById(c, productID)
	if err != nil {
		err = fmt.Errorf("failed finding updated product with error=%w", repository.Classify(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if err := svc.cache.Delete(c, productID); err != nil {
			logger.Warn().Err(err).Msg(err.Error())
		}
		return response.Product{}, err
	}
	product := response.NewProduct(row)

	logger = logger.With().Str(log.KeyProcess, "refreshing product cache").Logger()
	if _, err := svc.cache.Set(c, product); err != nil {
		logger.Warn().Err(err).Msg(err.Error())
		if err := svc.cache.Delete(c, productID); err != nil {
			logger.Warn().Err(err).Msg(err.Error())
		}
	}

	return product, nil
}

func imagePaths(p repository.Product) []string {
	paths := make([]string, 0, 4)
	for _, t := range []string{
		repository.TextToString(p.ImageOriginal),
		repository.TextToString(p.ImageLarge),
		repository.TextToString(p.ImageMedium),
		repository.TextToString(p.ImageSmall),
	} {
		if t != "" {
			paths = append(paths, t)
		}
	}
	return paths
}

// removeFiles deletes paths that no row references. Failures only leave
// orphan files behind, so they are logged and dropped.
func (svc *ProductService) removeFiles(c context.Context, paths []string) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductService removeFiles").Logger()

	var errs error
	dirs := make(map[string]struct{}, 1)
	for _, p := range paths {
		errs = errors.Join(errs, svc.blob.Remove(p))
		dirs[path.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		errs = errors.Join(errs, svc.blob.Prune(dir))
	}
	if errs != nil {
		logger.Warn().Err(errs).Strs(log.KeyImagePath, paths).Msg("failed removing unreferenced images")
	}
}
