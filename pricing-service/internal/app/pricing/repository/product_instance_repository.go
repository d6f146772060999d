package repository

import (
	"context"
	"errors"

	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productInstanceRepository struct {
	db *gorm.DB
}

// NewProductInstanceRepository creates the PostgreSQL-backed instance repository.
func NewProductInstanceRepository(db *gorm.DB) ProductInstanceRepository {
	return &productInstanceRepository{db: db}
}

func (r *productInstanceRepository) Create(ctx context.Context, instance *entity.ProductInstance) error {
	result := r.db.WithContext(ctx).Create(instance)
	return result.Error
}

func (r *productInstanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductInstance, error) {
	var instance entity.ProductInstance
	result := r.db.WithContext(ctx).Preload("ProductType").First(&instance, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductInstanceNotFound
		}
		return nil, result.Error
	}

	return &instance, nil
}

func (r *productInstanceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.ProductInstance, error) {
	var instances []entity.ProductInstance
	result := r.db.WithContext(ctx).
		Preload("ProductType").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&instances)

	if result.Error != nil {
		return nil, result.Error
	}

	return instances, nil
}

// Update persists the instance including its recomputed derived fields.
func (r *productInstanceRepository) Update(ctx context.Context, instance *entity.ProductInstance) error {
	result := r.db.WithContext(ctx).Model(instance).
		Where("id = ?", instance.ID).
		Updates(map[string]interface{}{
			"total_weight":   instance.TotalWeight,
			"price_per_kilo": instance.PricePerKilo,
			"unit":           instance.Unit,
			"waste_weight":   instance.WasteWeight,
			"net_weight":     instance.NetWeight,
			"total_price":    instance.TotalPrice,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductInstanceNotFound
	}

	return nil
}

func (r *productInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.ProductInstance{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductInstanceNotFound
	}

	return nil
}
