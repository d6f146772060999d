package repository

import (
	"context"
	"errors"

	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productTypeRepository struct {
	db *gorm.DB
}

// NewProductTypeRepository creates the PostgreSQL-backed product type repository.
func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepository{db: db}
}

func (r *productTypeRepository) Create(ctx context.Context, productType *entity.ProductType) error {
	result := r.db.WithContext(ctx).Create(productType)
	return result.Error
}

func (r *productTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	var productType entity.ProductType
	result := r.db.WithContext(ctx).Preload("Category").First(&productType, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, result.Error
	}

	return &productType, nil
}

func (r *productTypeRepository) GetAll(ctx context.Context) ([]entity.ProductType, error) {
	var productTypes []entity.ProductType
	result := r.db.WithContext(ctx).Preload("Category").Order("name ASC").Find(&productTypes)

	if result.Error != nil {
		return nil, result.Error
	}

	return productTypes, nil
}

func (r *productTypeRepository) Update(ctx context.Context, productType *entity.ProductType) error {
	result := r.db.WithContext(ctx).Model(productType).
		Where("id = ?", productType.ID).
		Updates(map[string]interface{}{
			"name":        productType.Name,
			"base_weight": productType.BaseWeight,
			"waste":       productType.Waste,
			"unit":        productType.Unit,
			"category_id": productType.CategoryID,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductTypeNotFound
	}

	return nil
}

func (r *productTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.ProductType{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductTypeNotFound
	}

	return nil
}
