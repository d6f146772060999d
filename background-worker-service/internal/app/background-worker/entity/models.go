package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PricingEvent mirrors the payload pricing-service publishes to Kafka.
type PricingEvent struct {
	EventType string    `json:"event_type"`
	EntityID  uuid.UUID `json:"entity_id"`
	UserID    uuid.UUID `json:"user_id"`
	Total     float64   `json:"total"`
	Unit      string    `json:"unit,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventTypeInstancePriced = "INSTANCE_PRICED"
	EventTypeRecipeCosted   = "RECIPE_COSTED"
	EventTypeRecipeDeleted  = "RECIPE_DELETED"
)

// PricingEventRecord is the MongoDB history document one consumed event
// becomes.
type PricingEventRecord struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EventType  string             `json:"event_type" bson:"event_type"`
	EntityID   string             `json:"entity_id" bson:"entity_id"`
	UserID     string             `json:"user_id" bson:"user_id"`
	Total      float64            `json:"total" bson:"total"`
	Unit       string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
	ReceivedAt time.Time          `json:"received_at" bson:"received_at"`
}

// Recipe maps the pricing-service recipes table. The worker only repairs
// total_cost, everything else belongs to pricing-service.
type Recipe struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Name         string    `json:"name" gorm:"type:varchar(200);not null"`
	SellingPrice *float64  `json:"selling_price,omitempty"`
	TotalCost    float64   `json:"total_cost" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeItem maps the pricing-service recipe_items table.
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

// ProductInstance maps the columns of the pricing-service product_instances
// table the cost computation needs.
type ProductInstance struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Unit         string    `json:"unit" gorm:"type:varchar(20);not null"`
	PricePerKilo float64   `json:"price_per_kilo" gorm:"not null"`
}

func (ProductInstance) TableName() string {
	return "product_instances"
}

const unitGram = "gram"

// Cost applies the pricing-service item cost rule: gram quantities are priced
// per thousand units, all other units per unit.
func (i *RecipeItem) Cost() float64 {
	if i.ProductInstance == nil {
		return 0
	}
	if i.ProductInstance.Unit == unitGram {
		return i.ProductInstance.PricePerKilo * i.Quantity / 1000
	}
	return i.ProductInstance.PricePerKilo * i.Quantity
}
