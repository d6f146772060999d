package entity

import (
	"github.com/google/uuid"

	"pantry/pricing-service/internal/app/pricing/costing"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateProductTypeRequest struct {
	Name       string       `json:"name" validate:"required,min=2,max=200"`
	BaseWeight float64      `json:"base_weight" validate:"gte=0"`
	Waste      float64      `json:"waste" validate:"gte=0"`
	Unit       costing.Unit `json:"unit" validate:"required,oneof=gram piece liter meter"`
	CategoryID *uuid.UUID   `json:"category_id,omitempty"`
}

type UpdateProductTypeRequest struct {
	Name       *string       `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	BaseWeight *float64      `json:"base_weight,omitempty" validate:"omitempty,gte=0"`
	Waste      *float64      `json:"waste,omitempty" validate:"omitempty,gte=0"`
	Unit       *costing.Unit `json:"unit,omitempty" validate:"omitempty,oneof=gram piece liter meter"`
	CategoryID *uuid.UUID    `json:"category_id,omitempty"`
}

type CreateProductInstanceRequest struct {
	ProductTypeID uuid.UUID     `json:"product_type_id" validate:"required"`
	TotalWeight   float64       `json:"total_weight" validate:"gte=0"`
	PricePerKilo  float64       `json:"price_per_kilo" validate:"gte=0"`
	Unit          *costing.Unit `json:"unit,omitempty" validate:"omitempty,oneof=gram piece liter meter"`
}

type UpdateProductInstanceRequest struct {
	TotalWeight  *float64      `json:"total_weight,omitempty" validate:"omitempty,gte=0"`
	PricePerKilo *float64      `json:"price_per_kilo,omitempty" validate:"omitempty,gte=0"`
	Unit         *costing.Unit `json:"unit,omitempty" validate:"omitempty,oneof=gram piece liter meter"`
}

type CreateRecipeRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	SellingPrice *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
}

type UpdateRecipeRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	SellingPrice *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
}

type AddRecipeItemRequest struct {
	ProductInstanceID uuid.UUID `json:"product_instance_id" validate:"required"`
	Quantity          float64   `json:"quantity" validate:"gt=0"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ProductTypeResponse adds the derived waste ratio to the stored fields.
type ProductTypeResponse struct {
	ProductType
	WasteRatio float64 `json:"waste_ratio"`
}

func NewProductTypeResponse(t ProductType) ProductTypeResponse {
	return ProductTypeResponse{ProductType: t, WasteRatio: t.WasteRatio()}
}

type ProductTypeListResponse struct {
	ProductTypes []ProductTypeResponse `json:"product_types"`
	Total        int                   `json:"total"`
}

type ProductTypeUnitResponse struct {
	Unit costing.Unit `json:"unit"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

type ProductInstanceListResponse struct {
	Products []ProductInstance `json:"products"`
	Total    int               `json:"total"`
}

// RecipeResponse adds the derived profit figures to the stored recipe.
type RecipeResponse struct {
	Recipe
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
}

func NewRecipeResponse(r Recipe) RecipeResponse {
	return RecipeResponse{
		Recipe:           r,
		Profit:           costing.Profit(r.SellingPrice, r.TotalCost),
		ProfitPercentage: costing.ProfitPercentage(r.SellingPrice, r.TotalCost),
	}
}

type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	Total   int              `json:"total"`
}

// RecipeCostResponse is the triple returned by an explicit recalculation.
type RecipeCostResponse struct {
	TotalCost        float64 `json:"total_cost"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
}

// ImportRowError reports one skipped bulk-import row.
type ImportRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk CSV import.
type ImportResult struct {
	CategoriesCreated   int              `json:"categories_created"`
	ProductTypesCreated int              `json:"product_types_created"`
	SkippedRows         []ImportRowError `json:"skipped_rows,omitempty"`
}
