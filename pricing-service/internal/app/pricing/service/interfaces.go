package service

import (
	"context"
	"io"

	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/google/uuid"
)

type PricingServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProductType(ctx context.Context, req *entity.CreateProductTypeRequest) (*entity.ProductType, error)
	GetProductType(ctx context.Context, id uuid.UUID) (*entity.ProductType, error)
	GetProductTypeUnit(ctx context.Context, id uuid.UUID) (*entity.ProductTypeUnitResponse, error)
	GetAllProductTypes(ctx context.Context) ([]entity.ProductType, error)
	UpdateProductType(ctx context.Context, id uuid.UUID, req *entity.UpdateProductTypeRequest) (*entity.ProductType, error)
	DeleteProductType(ctx context.Context, id uuid.UUID) error

	CreateProductInstance(ctx context.Context, userID uuid.UUID, req *entity.CreateProductInstanceRequest) (*entity.ProductInstance, error)
	GetProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.ProductInstance, error)
	GetUserProductInstances(ctx context.Context, userID uuid.UUID) ([]entity.ProductInstance, error)
	UpdateProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *entity.UpdateProductInstanceRequest) (*entity.ProductInstance, error)
	DeleteProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	CreateRecipe(ctx context.Context, userID uuid.UUID, req *entity.CreateRecipeRequest) (*entity.Recipe, error)
	GetRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Recipe, error)
	GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]entity.Recipe, error)
	UpdateRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *entity.UpdateRecipeRequest) (*entity.Recipe, error)
	DeleteRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	RecalculateRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.RecipeCostResponse, error)

	AddRecipeItem(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID, req *entity.AddRecipeItemRequest) (*entity.RecipeItem, error)
	DeleteRecipeItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error

	ImportCatalog(ctx context.Context, r io.Reader) (*entity.ImportResult, error)
}
