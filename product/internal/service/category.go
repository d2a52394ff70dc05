package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Alturino/grocery/internal/log"
	inOtel "github.com/Alturino/grocery/internal/otel"
	"github.com/Alturino/grocery/internal/repository"
	"github.com/Alturino/grocery/product/internal/otel"
	"github.com/Alturino/grocery/product/pkg/request"
	"github.com/Alturino/grocery/product/pkg/response"
)

type CategoryService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
}

func NewCategoryService(pool *pgxpool.Pool, queries *repository.Queries) *CategoryService {
	return &CategoryService{pool: pool, queries: queries}
}

func (svc *CategoryService) FindCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService FindCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService FindCategories").
		Str(log.KeyProcess, "finding categories in database").
		Logger()

	logger.Trace().Msg("finding categories in database")
	categories, err := svc.queries.FindCategories(c)
	if err != nil {
		err = fmt.Errorf("failed finding categories with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	subcategories, err := svc.queries.FindSubcategoriesByCategoryIds(c, ids)
	if err != nil {
		err = fmt.Errorf("failed finding subcategories with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyCategory, len(categories)).Msg("found categories in database")

	return response.NewCategories(categories, subcategories), nil
}

func (svc *CategoryService) InsertCategory(c context.Context, param request.Category) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CategoryService InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CategoryService InsertCategory").Logger()

	categorySlug, err := slugOrDerive(param.Slug, param.Name)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}

	logger = logger.With().
		Str(log.KeyProcess, "inserting category to database").
		Str(log.KeySlug, categorySlug).
		Logger()
	logger.Info().Msg("inserting category to database")
	category, err := svc.queries.InsertCategory(c, repository.InsertCategoryParams{
		ID:   uuid.New(),
		Name: param.Name,
		Slug: categorySlug,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting category with error=%w", repository.Classify(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}
	logger.Info().Str(log.KeyCategoryID, category.ID.String()).Msg("inserted category to database")

	return response.NewCategories([]repository.Category{category}, nil)[0], nil
}

// InsertSubcategory adds a subcategory under categoryID. A slug derived from
// the name gets a -1, -2, ... suffix until it is unique within the category,
// while an explicit slug that is taken is rejected.
func (svc *CategoryService) InsertSubcategory(
	c context.Context,
	categoryID uuid.UUID,
	param request.Subcategory,
) (response.Subcategory, error) {
	c, span := otel.Tracer.Start(c, "CategoryService InsertSubcategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CategoryService InsertSubcategory").
		Str(log.KeyCategoryID, categoryID.String()).
		Logger()

	base, err := slugOrDerive(param.Slug, param.Name)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Subcategory{}, err
	}
	derived := param.Slug == ""

	logger = logger.With().Str(log.KeyProcess, "inserting subcategory to database").Logger()
	logger.Info().Msg("inserting subcategory to database")
	subcategory, err := repository.WithTx(c, svc.pool, svc.queries,
		func(q *repository.Queries) (repository.Subcategory, error) {
			if _, err := q.LockCategoryById(c, categoryID); err != nil {
				return repository.Subcategory{}, fmt.Errorf("failed locking categoryId=%s with error=%w", categoryID.String(), err)
			}

			candidate := base
			for counter := 1; derived; counter++ {
				exists, err := q.ExistsSubcategorySlug(c, repository.ExistsSubcategorySlugParams{
					CategoryID: categoryID,
					Slug:       candidate,
				})
				if err != nil {
					return repository.Subcategory{}, fmt.Errorf("failed checking slug=%s with error=%w", candidate, err)
				}
				if !exists {
					break
				}
				candidate = fmt.Sprintf("%s-%d", base, counter)
			}

			return q.InsertSubcategory(c, repository.InsertSubcategoryParams{
				ID:         uuid.New(),
				CategoryID: categoryID,
				Name:       param.Name,
				Slug:       candidate,
			})
		},
	)
	if err != nil {
		err = fmt.Errorf("failed inserting subcategory with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Subcategory{}, err
	}
	logger.Info().Str(log.KeySlug, subcategory.Slug).Msg("inserted subcategory to database")

	return response.NewSubcategory(subcategory), nil
}
