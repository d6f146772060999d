package util

import (
	"context"
	"testing"
	"time"

	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CategoryCacheTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	cache     *RedisClient
}

func TestCategoryCacheSuite(t *testing.T) {
	suite.Run(t, new(CategoryCacheTestSuite))
}

func (s *CategoryCacheTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.cache, err = NewRedisClient(s.miniRedis.Addr(), "", 0)
	require.NoError(s.T(), err)
}

func (s *CategoryCacheTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *CategoryCacheTestSuite) TearDownSuite() {
	s.cache.Close()
	s.miniRedis.Close()
}

func (s *CategoryCacheTestSuite) TestGetCategories_Miss() {
	ctx := context.Background()

	// Act
	categories, err := s.cache.GetCategories(ctx)

	// Assert
	s.NoError(err)
	s.Nil(categories)
}

func (s *CategoryCacheTestSuite) TestSetAndGetCategories() {
	ctx := context.Background()
	stored := []entity.Category{
		{ID: uuid.New(), Name: "Vegetables", CreatedAt: time.Now().UTC()},
		{ID: uuid.New(), Name: "Dairy", CreatedAt: time.Now().UTC()},
	}

	// Act
	err := s.cache.SetCategories(ctx, stored, 5*time.Minute)
	s.Require().NoError(err)

	categories, err := s.cache.GetCategories(ctx)

	// Assert
	s.NoError(err)
	s.Require().Len(categories, 2)
	s.Equal(stored[0].ID, categories[0].ID)
	s.Equal("Vegetables", categories[0].Name)
	s.Equal("Dairy", categories[1].Name)
}

func (s *CategoryCacheTestSuite) TestSetCategories_TTLExpires() {
	ctx := context.Background()
	stored := []entity.Category{{ID: uuid.New(), Name: "Vegetables"}}

	err := s.cache.SetCategories(ctx, stored, time.Minute)
	s.Require().NoError(err)

	// Act
	s.miniRedis.FastForward(2 * time.Minute)
	categories, err := s.cache.GetCategories(ctx)

	// Assert
	s.NoError(err)
	s.Nil(categories)
}

func (s *CategoryCacheTestSuite) TestDeleteCategories() {
	ctx := context.Background()
	stored := []entity.Category{{ID: uuid.New(), Name: "Vegetables"}}

	err := s.cache.SetCategories(ctx, stored, 5*time.Minute)
	s.Require().NoError(err)

	// Act
	err = s.cache.DeleteCategories(ctx)
	s.Require().NoError(err)

	categories, err := s.cache.GetCategories(ctx)

	// Assert
	s.NoError(err)
	s.Nil(categories)
}

func (s *CategoryCacheTestSuite) TestGetCategories_CorruptPayload() {
	ctx := context.Background()
	s.Require().NoError(s.miniRedis.Set("categories:all", "{not json"))

	// Act
	categories, err := s.cache.GetCategories(ctx)

	// Assert
	s.Error(err)
	s.Nil(categories)
}
