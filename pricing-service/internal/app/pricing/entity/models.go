package entity

import (
	"time"

	"github.com/google/uuid"

	"pantry/pricing-service/internal/app/pricing/costing"
)

// Category groups product types. Carries no computation of its own.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}

// ProductType is the catalog entry end users price instances against.
// BaseWeight is the reference quantity and Waste the absolute waste amount at
// that quantity; the ratio between them scales every instance of this type.
type ProductType struct {
	ID         uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string       `json:"name" gorm:"type:varchar(200);not null"`
	BaseWeight float64      `json:"base_weight" gorm:"not null;default:0"`
	Waste      float64      `json:"waste" gorm:"not null;default:0"`
	Unit       costing.Unit `json:"unit" gorm:"type:varchar(20);not null;default:'gram'"`
	CategoryID *uuid.UUID   `json:"category_id,omitempty" gorm:"type:uuid"`
	Category   *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

func (ProductType) TableName() string {
	return "product_types"
}

// WasteRatio is derived, never stored.
func (t *ProductType) WasteRatio() float64 {
	return costing.WasteRatio(t.BaseWeight, t.Waste)
}

// ProductInstance is one priced, quantified occurrence of a product type,
// owned by a user. WasteWeight, NetWeight and TotalPrice are derived on every
// save from the type's waste ratio at that moment; editing the type later does
// not retroactively update existing instances.
type ProductInstance struct {
	ID            uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ProductTypeID uuid.UUID    `json:"product_type_id" gorm:"type:uuid;not null"`
	ProductType   *ProductType `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
	UserID        uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	TotalWeight   float64      `json:"total_weight" gorm:"not null"`
	PricePerKilo  float64      `json:"price_per_kilo" gorm:"not null"` // unit price per thousand units, historic name
	Unit          costing.Unit `json:"unit" gorm:"type:varchar(20);not null"`
	WasteWeight   float64      `json:"waste_weight" gorm:"not null"`
	NetWeight     float64      `json:"net_weight" gorm:"not null"`
	TotalPrice    float64      `json:"total_price" gorm:"not null"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

func (ProductInstance) TableName() string {
	return "product_instances"
}

// Recipe composes product instances into a costed dish. TotalCost is a cached
// aggregate, valid only as of the last explicit recalculation.
type Recipe struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	Name         string       `json:"name" gorm:"type:varchar(200);not null"`
	Description  string       `json:"description" gorm:"type:text"`
	SellingPrice *float64     `json:"selling_price,omitempty"`
	TotalCost    float64      `json:"total_cost" gorm:"not null;default:0"`
	CreatedAt    time.Time    `json:"created_at" gorm:"autoCreateTime"`
	Items        []RecipeItem `json:"items,omitempty" gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeItem is a quantity of a specific product instance consumed by a recipe.
type RecipeItem struct {
	ID                uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	RecipeID          uuid.UUID        `json:"recipe_id" gorm:"type:uuid;not null;index"`
	ProductInstanceID uuid.UUID        `json:"product_instance_id" gorm:"type:uuid;not null"`
	ProductInstance   *ProductInstance `json:"product_instance,omitempty" gorm:"foreignKey:ProductInstanceID"`
	Quantity          float64          `json:"quantity" gorm:"not null"`
}

func (RecipeItem) TableName() string {
	return "recipe_items"
}

// CostedItem maps a loaded item onto the aggregator's input. Items whose
// instance failed to preload contribute a zero-cost entry.
func (i *RecipeItem) CostedItem() costing.CostedItem {
	if i.ProductInstance == nil {
		return costing.CostedItem{Quantity: i.Quantity}
	}
	return costing.CostedItem{
		Unit:         i.ProductInstance.Unit,
		PricePerUnit: i.ProductInstance.PricePerKilo,
		Quantity:     i.Quantity,
	}
}

// PricingEvent is published to Kafka whenever derived pricing changes.
type PricingEvent struct {
	EventType string       `json:"event_type"` // INSTANCE_PRICED, RECIPE_COSTED, RECIPE_DELETED
	EntityID  uuid.UUID    `json:"entity_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Total     float64      `json:"total"`
	Unit      costing.Unit `json:"unit,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

const (
	EventInstancePriced = "INSTANCE_PRICED"
	EventRecipeCosted   = "RECIPE_COSTED"
	EventRecipeDeleted  = "RECIPE_DELETED"
)
