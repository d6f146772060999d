package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"pantry/pricing-service/internal/app/pricing/costing"
	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ProductInstanceRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ProductInstanceRepository
	sqlDB *sql.DB
}

func TestProductInstanceRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductInstanceRepositoryTestSuite))
}

func (s *ProductInstanceRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewProductInstanceRepository(s.db)
}

func (s *ProductInstanceRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== GetByID Tests =====================

func (s *ProductInstanceRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	instanceID := uuid.New()
	typeID := uuid.New()
	userID := uuid.New()
	createdAt := time.Now()

	instanceRows := sqlmock.NewRows([]string{
		"id", "product_type_id", "user_id", "total_weight", "price_per_kilo",
		"unit", "waste_weight", "net_weight", "total_price", "created_at",
	}).AddRow(instanceID, typeID, userID, 1000.0, 10000.0, "gram", 100.0, 900.0, 11000.0, createdAt)

	typeRows := sqlmock.NewRows([]string{
		"id", "name", "base_weight", "waste", "unit", "category_id", "created_at",
	}).AddRow(typeID, "Carrot", 10.0, 1.0, "gram", nil, createdAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_instances" WHERE id = $1`)).
		WithArgs(instanceID, 1).
		WillReturnRows(instanceRows)
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_types"`)).
		WithArgs(typeID).
		WillReturnRows(typeRows)

	// Act
	instance, err := s.repo.GetByID(ctx, instanceID)

	// Assert
	s.NoError(err)
	s.NotNil(instance)
	s.Equal(instanceID, instance.ID)
	s.Equal(userID, instance.UserID)
	s.Equal(1000.0, instance.TotalWeight)
	s.Equal(10000.0, instance.PricePerKilo)
	s.Equal(costing.UnitGram, instance.Unit)
	s.Equal(11000.0, instance.TotalPrice)
	s.Require().NotNil(instance.ProductType)
	s.Equal("Carrot", instance.ProductType.Name)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductInstanceRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	instanceID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_instances" WHERE id = $1`)).
		WithArgs(instanceID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	instance, err := s.repo.GetByID(ctx, instanceID)

	// Assert
	s.Nil(instance)
	s.ErrorIs(err, ErrProductInstanceNotFound)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductInstanceRepositoryTestSuite) TestGetByID_DBError() {
	ctx := context.Background()
	instanceID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_instances" WHERE id = $1`)).
		WithArgs(instanceID, 1).
		WillReturnError(sql.ErrConnDone)

	// Act
	instance, err := s.repo.GetByID(ctx, instanceID)

	// Assert
	s.Nil(instance)
	s.ErrorIs(err, sql.ErrConnDone)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByUserID Tests =====================

func (s *ProductInstanceRepositoryTestSuite) TestGetByUserID_Success() {
	ctx := context.Background()
	userID := uuid.New()
	typeID := uuid.New()
	createdAt := time.Now()

	instanceRows := sqlmock.NewRows([]string{
		"id", "product_type_id", "user_id", "total_weight", "price_per_kilo",
		"unit", "waste_weight", "net_weight", "total_price", "created_at",
	}).
		AddRow(uuid.New(), typeID, userID, 500.0, 20000.0, "gram", 50.0, 450.0, 11000.0, createdAt).
		AddRow(uuid.New(), typeID, userID, 3.0, 150.0, "piece", 0.0, 3.0, 0.45, createdAt)

	typeRows := sqlmock.NewRows([]string{
		"id", "name", "base_weight", "waste", "unit", "category_id", "created_at",
	}).AddRow(typeID, "Carrot", 10.0, 1.0, "gram", nil, createdAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_instances" WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnRows(instanceRows)
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_types"`)).
		WillReturnRows(typeRows)

	// Act
	instances, err := s.repo.GetByUserID(ctx, userID)

	// Assert
	s.NoError(err)
	s.Len(instances, 2)
	s.Equal(userID, instances[0].UserID)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductInstanceRepositoryTestSuite) TestGetByUserID_Empty() {
	ctx := context.Background()
	userID := uuid.New()

	instanceRows := sqlmock.NewRows([]string{
		"id", "product_type_id", "user_id", "total_weight", "price_per_kilo",
		"unit", "waste_weight", "net_weight", "total_price", "created_at",
	})

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_instances" WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnRows(instanceRows)

	// Act
	instances, err := s.repo.GetByUserID(ctx, userID)

	// Assert
	s.NoError(err)
	s.Empty(instances)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Update Tests =====================

func (s *ProductInstanceRepositoryTestSuite) TestUpdate_Success() {
	ctx := context.Background()
	instance := &entity.ProductInstance{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		TotalWeight:  2000.0,
		PricePerKilo: 5000.0,
		Unit:         costing.UnitGram,
		WasteWeight:  200.0,
		NetWeight:    1800.0,
		TotalPrice:   11000.0,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "product_instances" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Update(ctx, instance)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductInstanceRepositoryTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()
	instance := &entity.ProductInstance{
		ID:   uuid.New(),
		Unit: costing.UnitGram,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "product_instances" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0)) // 0 rows affected
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Update(ctx, instance)

	// Assert
	s.ErrorIs(err, ErrProductInstanceNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductInstanceRepositoryTestSuite) TestUpdate_DBError() {
	ctx := context.Background()
	instance := &entity.ProductInstance{
		ID:   uuid.New(),
		Unit: costing.UnitGram,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "product_instances" SET`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Update(ctx, instance)

	// Assert
	s.ErrorIs(err, sql.ErrConnDone)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Delete Tests =====================

func (s *ProductInstanceRepositoryTestSuite) TestDelete_Success() {
	ctx := context.Background()
	instanceID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "product_instances" WHERE id = $1`)).
		WithArgs(instanceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Delete(ctx, instanceID)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductInstanceRepositoryTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	instanceID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "product_instances" WHERE id = $1`)).
		WithArgs(instanceID).
		WillReturnResult(sqlmock.NewResult(0, 0)) // 0 rows affected
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Delete(ctx, instanceID)

	// Assert
	s.ErrorIs(err, ErrProductInstanceNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Constructor Tests =====================

func TestNewProductInstanceRepository(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	// Act
	repo := NewProductInstanceRepository(db)

	// Assert
	assert.NotNil(t, repo)
}
