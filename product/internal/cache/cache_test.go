package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Alturino/grocery/internal/testutil"
	"github.com/Alturino/grocery/product/pkg/response"
)

type productCacheSuite struct {
	suite.Suite

	c      context.Context
	client *redis.Client
	cache  *ProductCache
}

func TestProductCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container backed tests in short mode")
	}
	suite.Run(t, new(productCacheSuite))
}

func (s *productCacheSuite) SetupSuite() {
	s.c = testutil.Context(s.T())
	s.client = testutil.StartRedis(s.c, s.T())
	s.cache = NewProductCache(s.client, time.Minute)
}

func (s *productCacheSuite) product(updatedAt time.Time, original string) response.Product {
	return response.Product{
		ID:            uuid.New(),
		Name:          "Kiwi",
		Slug:          "kiwi",
		Price:         decimal.RequireFromString("1.50"),
		ImageOriginal: original,
		CreatedAt:     updatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (s *productCacheSuite) TestGetMiss() {
	_, found, err := s.cache.Get(s.c, uuid.New())
	s.Require().NoError(err)
	s.False(found)
}

func (s *productCacheSuite) TestSetKeepsNewerVersion() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	older := s.product(now, "products/kiwi/a/kiwi_original.png")
	newer := older
	newer.UpdatedAt = now.Add(time.Millisecond)
	newer.ImageOriginal = "products/kiwi/b/kiwi_original.png"

	written, err := s.cache.Set(s.c, newer)
	s.Require().NoError(err)
	s.True(written)

	written, err = s.cache.Set(s.c, older)
	s.Require().NoError(err)
	s.False(written, "older product must not replace a newer one")

	actual, found, err := s.cache.Get(s.c, newer.ID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(newer.ImageOriginal, actual.ImageOriginal)
	s.True(newer.UpdatedAt.Equal(actual.UpdatedAt))

	ttl, err := s.client.PTTL(s.c, ProductKey(newer.ID)).Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *productCacheSuite) TestSetSameVersionOverwrites() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	first := s.product(now, "")
	second := first
	second.Name = "Golden Kiwi"

	_, err := s.cache.Set(s.c, first)
	s.Require().NoError(err)
	written, err := s.cache.Set(s.c, second)
	s.Require().NoError(err)
	s.True(written)

	actual, _, err := s.cache.Get(s.c, first.ID)
	s.Require().NoError(err)
	s.Equal("Golden Kiwi", actual.Name)
}

func (s *productCacheSuite) TestDelete() {
	product := s.product(time.Now(), "")
	_, err := s.cache.Set(s.c, product)
	s.Require().NoError(err)

	s.Require().NoError(s.cache.Delete(s.c, product.ID))
	s.Require().NoError(s.cache.Delete(s.c, product.ID), "deleting a missing key should not fail")

	_, found, err := s.cache.Get(s.c, product.ID)
	s.Require().NoError(err)
	s.False(found)
}
