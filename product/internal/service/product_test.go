package service

import (
	"bytes"
	"context"
	"fmt"
	stdImage "image"
	"image/color"
	"image/png"
	"path"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	inErrors "github.com/Alturino/grocery/internal/errors"
	"github.com/Alturino/grocery/internal/repository"
	"github.com/Alturino/grocery/internal/storage"
	"github.com/Alturino/grocery/internal/storage/storagetest"
	"github.com/Alturino/grocery/internal/testutil"
	"github.com/Alturino/grocery/product/internal/cache"
	"github.com/Alturino/grocery/product/internal/image"
	"github.com/Alturino/grocery/product/pkg/request"
	"github.com/Alturino/grocery/product/pkg/response"
)

type productServiceSuite struct {
	suite.Suite

	c           context.Context
	pool        *pgxpool.Pool
	queries     *repository.Queries
	redis       *redis.Client
	blob        *storage.Blob
	products    *ProductService
	categories  *CategoryService
	subcategory repository.Subcategory
}

func TestProductServiceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container backed tests in short mode")
	}
	suite.Run(t, new(productServiceSuite))
}

func (s *productServiceSuite) SetupSuite() {
	s.c = testutil.Context(s.T())
	s.pool = testutil.StartPostgres(s.c, s.T())
	s.redis = testutil.StartRedis(s.c, s.T())
	s.queries = repository.New(s.pool)
	s.blob = storage.NewBlob(afero.NewMemMapFs())
	s.products = NewProductService(s.pool, s.queries, cache.NewProductCache(s.redis, time.Minute), s.blob)
	s.categories = NewCategoryService(s.pool, s.queries)
	s.subcategory = testutil.SeedSubcategory(s.c, s.T(), s.queries)
}

func (s *productServiceSuite) pngOf(width int, height int) []byte {
	img := stdImage.NewRGBA(stdImage.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	buf := bytes.Buffer{}
	s.Require().NoError(png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *productServiceSuite) product() repository.Product {
	return testutil.SeedProduct(s.c, s.T(), s.queries, s.subcategory.ID, decimal.RequireFromString("4.20"))
}

func (s *productServiceSuite) bounds(p string) stdImage.Rectangle {
	f, err := s.blob.Open(p)
	s.Require().NoError(err)
	defer f.Close()
	cfg, _, err := stdImage.DecodeConfig(f)
	s.Require().NoError(err)
	return stdImage.Rect(0, 0, cfg.Width, cfg.Height)
}

func (s *productServiceSuite) TestInsertProduct() {
	name := "Green Apples " + gofakeit.DigitN(6)
	actual, err := s.products.InsertProduct(s.c, request.Product{
		SubcategoryID: s.subcategory.ID,
		Name:          name,
		Price:         decimal.RequireFromString("12.30"),
	})
	s.Require().NoError(err)

	s.Equal(name, actual.Name)
	s.Equal(fmt.Sprintf("green-apples-%s", name[len(name)-6:]), actual.Slug)
	s.Equal(s.subcategory.Name, actual.Subcategory)
	s.True(decimal.RequireFromString("12.30").Equal(actual.Price))
	s.Empty(actual.ImagePaths())

	_, err = s.products.InsertProduct(s.c, request.Product{
		SubcategoryID: s.subcategory.ID,
		Name:          name,
		Price:         decimal.RequireFromString("1.00"),
	})
	s.ErrorIs(err, inErrors.ErrAlreadyExist)

	_, err = s.products.InsertProduct(s.c, request.Product{
		SubcategoryID: uuid.New(),
		Name:          "Orphan " + gofakeit.DigitN(6),
		Price:         decimal.RequireFromString("1.00"),
	})
	s.ErrorIs(err, inErrors.ErrNotFound)
}

func (s *productServiceSuite) TestFindProductByIdUsesCache() {
	seeded := s.product()

	first, err := s.products.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)
	s.Equal(seeded.Name, first.Name)

	exists, err := s.redis.Exists(s.c, cache.ProductKey(seeded.ID)).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists)

	_, err = s.products.FindProductById(s.c, uuid.New())
	s.ErrorIs(err, inErrors.ErrNotFound)
}

func (s *productServiceSuite) TestUploadImage() {
	seeded := s.product()
	_, err := s.products.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)

	actual, err := s.products.UploadImage(s.c, seeded.ID, "Photo.PNG", bytes.NewReader(s.pngOf(1600, 1200)))
	s.Require().NoError(err)

	upload := path.Base(path.Dir(actual.ImageOriginal))
	s.Equal(image.Path(seeded.Slug, upload, image.VariantOriginal, "png"), actual.ImageOriginal)
	s.Equal(image.Path(seeded.Slug, upload, image.VariantLarge, "png"), actual.ImageLarge)
	s.Equal(image.Path(seeded.Slug, upload, image.VariantMedium, "png"), actual.ImageMedium)
	s.Equal(image.Path(seeded.Slug, upload, image.VariantSmall, "png"), actual.ImageSmall)
	s.NoError(uuid.Validate(upload))

	s.Equal(stdImage.Rect(0, 0, 1600, 1200), s.bounds(actual.ImageOriginal))
	s.Equal(stdImage.Rect(0, 0, 800, 600), s.bounds(actual.ImageLarge))
	s.Equal(stdImage.Rect(0, 0, 400, 300), s.bounds(actual.ImageMedium))
	s.Equal(stdImage.Rect(0, 0, 200, 150), s.bounds(actual.ImageSmall))

	row, err := s.queries.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)
	s.Equal(actual.ImagePaths(), response.NewProduct(row).ImagePaths(), "cached product must match the database")

	cached, found, err := s.products.cache.Get(s.c, seeded.ID)
	s.Require().NoError(err)
	s.Require().True(found, "upload refreshes the cache")
	s.Equal(actual.ImagePaths(), cached.ImagePaths())
}

func (s *productServiceSuite) TestUploadImageIgnoresStaleCacheWrite() {
	seeded := s.product()
	stale, err := s.products.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)

	uploaded, err := s.products.UploadImage(s.c, seeded.ID, "a.png", bytes.NewReader(s.pngOf(300, 150)))
	s.Require().NoError(err)
	s.True(uploaded.UpdatedAt.After(stale.UpdatedAt))

	written, err := s.products.cache.Set(s.c, stale)
	s.Require().NoError(err)
	s.False(written, "a reader holding the row from before the upload must not win")

	actual, err := s.products.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)
	s.Equal(uploaded.ImagePaths(), actual.ImagePaths())
}

func (s *productServiceSuite) TestUploadImageReplacesOldSet() {
	seeded := s.product()

	first, err := s.products.UploadImage(s.c, seeded.ID, "a.jpg", bytes.NewReader(s.pngOf(300, 150)))
	s.Require().NoError(err)
	second, err := s.products.UploadImage(s.c, seeded.ID, "b.png", bytes.NewReader(s.pngOf(300, 150)))
	s.Require().NoError(err)

	for _, p := range second.ImagePaths() {
		exists, err := s.blob.Exists(p)
		s.Require().NoError(err)
		s.True(exists, p)
	}
	for _, p := range first.ImagePaths() {
		exists, err := s.blob.Exists(p)
		s.Require().NoError(err)
		s.False(exists, "stale image %s should be removed", p)
	}
	exists, err := afero.DirExists(s.blob.Fs(), path.Dir(first.ImageOriginal))
	s.Require().NoError(err)
	s.False(exists, "emptied upload directory should be removed")
}

func (s *productServiceSuite) TestUploadImageFailedKeepsPreviousSet() {
	seeded := s.product()
	first, err := s.products.UploadImage(s.c, seeded.ID, "a.png", bytes.NewReader(s.pngOf(300, 150)))
	s.Require().NoError(err)

	failing := NewProductService(
		s.pool,
		s.queries,
		s.products.cache,
		storage.NewBlob(storagetest.FailingFs{Fs: s.blob.Fs(), RenameMatch: "_medium"}),
	)
	_, err = failing.UploadImage(s.c, seeded.ID, "b.png", bytes.NewReader(s.pngOf(100, 400)))
	s.Require().ErrorIs(err, inErrors.ErrProcessing)

	row, err := s.queries.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)
	product := response.NewProduct(row)
	s.Equal(first.ImagePaths(), product.ImagePaths())
	s.Equal(stdImage.Rect(0, 0, 300, 150), s.bounds(product.ImageOriginal), "original must still be the first upload")
	s.Equal(stdImage.Rect(0, 0, 300, 150), s.bounds(product.ImageLarge))
	s.Equal(stdImage.Rect(0, 0, 300, 150), s.bounds(product.ImageMedium))
	s.Equal(stdImage.Rect(0, 0, 200, 100), s.bounds(product.ImageSmall))

	entries, err := afero.ReadDir(s.blob.Fs(), path.Join("products", seeded.Slug))
	s.Require().NoError(err)
	s.Require().Len(entries, 1, "files of the failed upload are removed")
	s.Equal(path.Dir(first.ImageOriginal), path.Join("products", seeded.Slug, entries[0].Name()))

	actual, err := s.products.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)
	s.Equal(first.ImagePaths(), actual.ImagePaths())
}

func (s *productServiceSuite) TestUploadImageFailures() {
	seeded := s.product()

	testCases := []struct {
		name        string
		productID   uuid.UUID
		filename    string
		content     []byte
		expectedErr error
	}{
		{name: "missing extension", productID: seeded.ID, filename: "photo", content: s.pngOf(10, 10), expectedErr: inErrors.ErrInvalidArgument},
		{name: "corrupt image", productID: seeded.ID, filename: "photo.png", content: []byte("not an image"), expectedErr: inErrors.ErrProcessing},
		{name: "unknown product", productID: uuid.New(), filename: "photo.png", content: s.pngOf(10, 10), expectedErr: inErrors.ErrNotFound},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.products.UploadImage(s.c, tc.productID, tc.filename, bytes.NewReader(tc.content))
			s.ErrorIs(err, tc.expectedErr)
		})
	}

	row, err := s.queries.FindProductById(s.c, seeded.ID)
	s.Require().NoError(err)
	s.Empty(response.NewProduct(row).ImagePaths())
	exists, err := afero.DirExists(s.blob.Fs(), "products/"+seeded.Slug)
	s.Require().NoError(err)
	if exists {
		entries, err := afero.ReadDir(s.blob.Fs(), "products/"+seeded.Slug)
		s.Require().NoError(err)
		s.Empty(entries)
	}
}

func (s *productServiceSuite) TestFindProducts() {
	_, err := s.products.FindProducts(s.c, 0)
	s.ErrorIs(err, inErrors.ErrInvalidArgument)

	for range response.PageSize + 1 {
		s.product()
	}
	count, err := s.queries.CountProducts(s.c)
	s.Require().NoError(err)

	first, err := s.products.FindProducts(s.c, 1)
	s.Require().NoError(err)
	s.Equal(count, first.Count)
	s.Len(first.Results, response.PageSize)
	s.Nil(first.Previous)
	s.Require().NotNil(first.Next)
	s.Equal("/products?page=2", *first.Next)

	last := response.LastPage(count)
	tail, err := s.products.FindProducts(s.c, last)
	s.Require().NoError(err)
	s.Nil(tail.Next)
	s.NotEmpty(tail.Results)

	_, err = s.products.FindProducts(s.c, last+1)
	s.ErrorIs(err, inErrors.ErrNotFound)
}

func (s *productServiceSuite) TestInsertSubcategorySlugCounter() {
	category, err := s.categories.InsertCategory(s.c, request.Category{Name: "Drinks " + gofakeit.DigitN(6)})
	s.Require().NoError(err)
	s.Empty(category.Subcategories)

	expected := []string{"soft-drinks", "soft-drinks-1", "soft-drinks-2"}
	for _, slug := range expected {
		actual, err := s.categories.InsertSubcategory(s.c, category.ID, request.Subcategory{Name: "Soft Drinks"})
		s.Require().NoError(err)
		s.Equal(slug, actual.Slug)
	}

	_, err = s.categories.InsertSubcategory(s.c, category.ID, request.Subcategory{Name: "Soda", Slug: "soft-drinks"})
	s.ErrorIs(err, inErrors.ErrAlreadyExist)

	_, err = s.categories.InsertSubcategory(s.c, uuid.New(), request.Subcategory{Name: "Juice"})
	s.ErrorIs(err, inErrors.ErrNotFound)

	categories, err := s.categories.FindCategories(s.c)
	s.Require().NoError(err)
	for _, c := range categories {
		if c.ID != category.ID {
			continue
		}
		s.Len(c.Subcategories, len(expected))
		return
	}
	s.Fail("inserted category not listed")
}
