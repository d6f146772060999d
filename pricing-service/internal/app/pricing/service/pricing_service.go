package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"pantry/pkg/logger"
	"pantry/pkg/metrics"
	"pantry/pricing-service/internal/app/pricing/costing"
	"pantry/pricing-service/internal/app/pricing/entity"
	"pantry/pricing-service/internal/app/pricing/importer"
	"pantry/pricing-service/internal/app/pricing/repository"
	"pantry/pricing-service/internal/app/pricing/util"

	"github.com/google/uuid"
)

var (
	// Business errors translated to HTTP statuses in handlers.
	ErrCategoryNotFound        = errors.New("category not found")
	ErrProductTypeNotFound     = errors.New("product type not found")
	ErrProductInstanceNotFound = errors.New("product instance not found")
	ErrRecipeNotFound          = errors.New("recipe not found")
	ErrRecipeItemNotFound      = errors.New("recipe item not found")
	ErrForbidden               = errors.New("resource belongs to another user")
)

// Recalculation triggers reported on the recipe metrics.
const (
	TriggerItemAdded   = "item_added"
	TriggerItemDeleted = "item_deleted"
	TriggerExplicit    = "explicit"
)

const categoriesCacheTTL = time.Hour

// PricingService coordinates the catalog repositories, the cache, the event
// producer and the costing arithmetic.
type PricingService struct {
	categoryRepo    repository.CategoryRepository
	productTypeRepo repository.ProductTypeRepository
	instanceRepo    repository.ProductInstanceRepository
	recipeRepo      repository.RecipeRepository
	recipeItemRepo  repository.RecipeItemRepository
	cache           util.CategoryCache
	producer        util.MessagePublisher
	importer        *importer.Importer
}

func NewPricingService(
	categoryRepo repository.CategoryRepository,
	productTypeRepo repository.ProductTypeRepository,
	instanceRepo repository.ProductInstanceRepository,
	recipeRepo repository.RecipeRepository,
	recipeItemRepo repository.RecipeItemRepository,
	cache util.CategoryCache,
	producer util.MessagePublisher,
) *PricingService {
	return &PricingService{
		categoryRepo:    categoryRepo,
		productTypeRepo: productTypeRepo,
		instanceRepo:    instanceRepo,
		recipeRepo:      recipeRepo,
		recipeItemRepo:  recipeItemRepo,
		cache:           cache,
		producer:        producer,
		importer:        importer.New(categoryRepo, productTypeRepo),
	}
}

// === CATEGORIES ===

func (s *PricingService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

func (s *PricingService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetAllCategories reads through the Redis cache. Cache failures degrade to
// the database.
func (s *PricingService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil && len(categories) > 0 {
		return categories, nil
	}

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, categoriesCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache categories")
	}

	return categories, nil
}

func (s *PricingService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

func (s *PricingService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return nil
}

func (s *PricingService) invalidateCategoriesCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}

// === PRODUCT TYPES ===

func (s *PricingService) CreateProductType(ctx context.Context, req *entity.CreateProductTypeRequest) (*entity.ProductType, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	productType := &entity.ProductType{
		ID:         uuid.New(),
		Name:       req.Name,
		BaseWeight: req.BaseWeight,
		Waste:      req.Waste,
		Unit:       req.Unit,
		CategoryID: req.CategoryID,
		CreatedAt:  time.Now(),
	}

	if err := s.productTypeRepo.Create(ctx, productType); err != nil {
		return nil, fmt.Errorf("failed to create product type: %w", err)
	}

	return productType, nil
}

func (s *PricingService) GetProductType(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	productType, err := s.productTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("failed to get product type: %w", err)
	}

	return productType, nil
}

// GetProductTypeUnit serves the lightweight unit lookup the instance form uses
// before submitting.
func (s *PricingService) GetProductTypeUnit(ctx context.Context, id uuid.UUID) (*entity.ProductTypeUnitResponse, error) {
	productType, err := s.GetProductType(ctx, id)
	if err != nil {
		return nil, err
	}

	return &entity.ProductTypeUnitResponse{Unit: productType.Unit}, nil
}

func (s *PricingService) GetAllProductTypes(ctx context.Context) ([]entity.ProductType, error) {
	productTypes, err := s.productTypeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get product types: %w", err)
	}

	return productTypes, nil
}

// UpdateProductType changes the type only. Existing instances keep the derived
// values computed from the ratio in force when they were last saved.
func (s *PricingService) UpdateProductType(ctx context.Context, id uuid.UUID, req *entity.UpdateProductTypeRequest) (*entity.ProductType, error) {
	productType, err := s.productTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("failed to get product type: %w", err)
	}

	if req.Name != nil {
		productType.Name = *req.Name
	}
	if req.BaseWeight != nil {
		productType.BaseWeight = *req.BaseWeight
	}
	if req.Waste != nil {
		productType.Waste = *req.Waste
	}
	if req.Unit != nil {
		productType.Unit = *req.Unit
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		productType.CategoryID = req.CategoryID
	}

	if err := s.productTypeRepo.Update(ctx, productType); err != nil {
		return nil, fmt.Errorf("failed to update product type: %w", err)
	}

	return productType, nil
}

func (s *PricingService) DeleteProductType(ctx context.Context, id uuid.UUID) error {
	if err := s.productTypeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return ErrProductTypeNotFound
		}
		return fmt.Errorf("failed to delete product type: %w", err)
	}

	return nil
}

// === PRODUCT INSTANCES ===

// CreateProductInstance prices the instance against the type's waste ratio as
// of right now and stores the derived fields alongside the inputs.
func (s *PricingService) CreateProductInstance(ctx context.Context, userID uuid.UUID, req *entity.CreateProductInstanceRequest) (*entity.ProductInstance, error) {
	productType, err := s.productTypeRepo.GetByID(ctx, req.ProductTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("failed to get product type: %w", err)
	}

	unit := productType.Unit
	if req.Unit != nil {
		unit = *req.Unit
	}

	instance := &entity.ProductInstance{
		ID:            uuid.New(),
		ProductTypeID: productType.ID,
		UserID:        userID,
		TotalWeight:   req.TotalWeight,
		PricePerKilo:  req.PricePerKilo,
		Unit:          unit,
		CreatedAt:     time.Now(),
	}
	s.applyPricing(instance, productType)

	if err := s.instanceRepo.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create product instance: %w", err)
	}

	metrics.InstancesPriced.Inc()
	s.publishEvent(ctx, entity.PricingEvent{
		EventType: entity.EventInstancePriced,
		EntityID:  instance.ID,
		UserID:    userID,
		Total:     instance.TotalPrice,
		Unit:      instance.Unit,
		Timestamp: time.Now(),
	})

	return instance, nil
}

func (s *PricingService) GetProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.ProductInstance, error) {
	instance, err := s.instanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductInstanceNotFound) {
			return nil, ErrProductInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get product instance: %w", err)
	}

	if instance.UserID != userID {
		return nil, ErrForbidden
	}

	return instance, nil
}

func (s *PricingService) GetUserProductInstances(ctx context.Context, userID uuid.UUID) ([]entity.ProductInstance, error) {
	instances, err := s.instanceRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product instances: %w", err)
	}

	return instances, nil
}

// UpdateProductInstance recomputes every derived field unconditionally, using
// the type's current waste ratio.
func (s *PricingService) UpdateProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *entity.UpdateProductInstanceRequest) (*entity.ProductInstance, error) {
	instance, err := s.GetProductInstance(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.TotalWeight != nil {
		instance.TotalWeight = *req.TotalWeight
	}
	if req.PricePerKilo != nil {
		instance.PricePerKilo = *req.PricePerKilo
	}
	if req.Unit != nil {
		instance.Unit = *req.Unit
	}

	productType, err := s.productTypeRepo.GetByID(ctx, instance.ProductTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrProductTypeNotFound) {
			return nil, ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("failed to get product type: %w", err)
	}
	s.applyPricing(instance, productType)

	if err := s.instanceRepo.Update(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to update product instance: %w", err)
	}

	metrics.InstancesPriced.Inc()
	s.publishEvent(ctx, entity.PricingEvent{
		EventType: entity.EventInstancePriced,
		EntityID:  instance.ID,
		UserID:    userID,
		Total:     instance.TotalPrice,
		Unit:      instance.Unit,
		Timestamp: time.Now(),
	})

	return instance, nil
}

func (s *PricingService) DeleteProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if _, err := s.GetProductInstance(ctx, userID, id); err != nil {
		return err
	}

	if err := s.instanceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product instance: %w", err)
	}

	return nil
}

func (s *PricingService) applyPricing(instance *entity.ProductInstance, productType *entity.ProductType) {
	pricing := costing.ComputeInstancePricing(productType.WasteRatio(), instance.TotalWeight, instance.PricePerKilo)
	instance.WasteWeight = pricing.WasteWeight
	instance.NetWeight = pricing.NetWeight
	instance.TotalPrice = pricing.TotalPrice
}

// === RECIPES ===

func (s *PricingService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *entity.CreateRecipeRequest) (*entity.Recipe, error) {
	recipe := &entity.Recipe{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		SellingPrice: req.SellingPrice,
		CreatedAt:    time.Now(),
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return recipe, nil
}

func (s *PricingService) GetRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Recipe, error) {
	recipe, err := s.recipeRepo.GetWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if recipe.UserID != userID {
		return nil, ErrForbidden
	}

	return recipe, nil
}

func (s *PricingService) GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]entity.Recipe, error) {
	recipes, err := s.recipeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	return recipes, nil
}

func (s *PricingService) UpdateRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *entity.UpdateRecipeRequest) (*entity.Recipe, error) {
	recipe, err := s.getOwnedRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.SellingPrice != nil {
		recipe.SellingPrice = req.SellingPrice
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	return recipe, nil
}

func (s *PricingService) DeleteRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if _, err := s.getOwnedRecipe(ctx, userID, id); err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.publishEvent(ctx, entity.PricingEvent{
		EventType: entity.EventRecipeDeleted,
		EntityID:  id,
		UserID:    userID,
		Timestamp: time.Now(),
	})

	return nil
}

// RecalculateRecipe recomputes and persists total_cost, then returns the
// cost/profit triple against the current selling price.
func (s *PricingService) RecalculateRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.RecipeCostResponse, error) {
	recipe, err := s.getOwnedRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return s.recalc(ctx, recipe, TriggerExplicit)
}

func (s *PricingService) recalc(ctx context.Context, recipe *entity.Recipe, trigger string) (*entity.RecipeCostResponse, error) {
	totalCost, err := s.recipeRepo.RecalcTotalCost(ctx, recipe.ID, func(items []entity.RecipeItem) float64 {
		costed := make([]costing.CostedItem, 0, len(items))
		for i := range items {
			costed = append(costed, items[i].CostedItem())
		}
		return costing.TotalCost(costed)
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to recalculate recipe cost: %w", err)
	}

	metrics.RecipesRecalculated.WithLabelValues(trigger).Inc()
	s.publishEvent(ctx, entity.PricingEvent{
		EventType: entity.EventRecipeCosted,
		EntityID:  recipe.ID,
		UserID:    recipe.UserID,
		Total:     totalCost,
		Timestamp: time.Now(),
	})

	return &entity.RecipeCostResponse{
		TotalCost:        totalCost,
		Profit:           costing.Profit(recipe.SellingPrice, totalCost),
		ProfitPercentage: costing.ProfitPercentage(recipe.SellingPrice, totalCost),
	}, nil
}

func (s *PricingService) getOwnedRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if recipe.UserID != userID {
		return nil, ErrForbidden
	}

	return recipe, nil
}

// === RECIPE ITEMS ===

// AddRecipeItem attaches an instance to the recipe and synchronously
// recomputes the recipe's total cost.
func (s *PricingService) AddRecipeItem(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID, req *entity.AddRecipeItemRequest) (*entity.RecipeItem, error) {
	recipe, err := s.getOwnedRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	instance, err := s.GetProductInstance(ctx, userID, req.ProductInstanceID)
	if err != nil {
		return nil, err
	}

	item := &entity.RecipeItem{
		ID:                uuid.New(),
		RecipeID:          recipe.ID,
		ProductInstanceID: instance.ID,
		Quantity:          req.Quantity,
	}

	if err := s.recipeItemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create recipe item: %w", err)
	}

	if _, err := s.recalc(ctx, recipe, TriggerItemAdded); err != nil {
		return nil, err
	}

	item.ProductInstance = instance
	return item, nil
}

// DeleteRecipeItem removes the item and recomputes the parent recipe's total
// cost, which drops by exactly the item's prior contribution.
func (s *PricingService) DeleteRecipeItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error {
	item, err := s.recipeItemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeItemNotFound) {
			return ErrRecipeItemNotFound
		}
		return fmt.Errorf("failed to get recipe item: %w", err)
	}

	recipe, err := s.getOwnedRecipe(ctx, userID, item.RecipeID)
	if err != nil {
		return err
	}

	if err := s.recipeItemRepo.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrRecipeItemNotFound) {
			return ErrRecipeItemNotFound
		}
		return fmt.Errorf("failed to delete recipe item: %w", err)
	}

	if _, err := s.recalc(ctx, recipe, TriggerItemDeleted); err != nil {
		return err
	}

	return nil
}

// === BULK IMPORT ===

func (s *PricingService) ImportCatalog(ctx context.Context, r io.Reader) (*entity.ImportResult, error) {
	result, err := s.importer.Import(ctx, r)
	if err != nil {
		return nil, err
	}

	if result.CategoriesCreated > 0 {
		s.invalidateCategoriesCache(ctx)
	}

	return result, nil
}

// publishEvent sends a pricing event to Kafka. Failures are logged and do not
// fail the triggering operation.
func (s *PricingService) publishEvent(ctx context.Context, event entity.PricingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to marshal pricing event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.EntityID.String(), data); err != nil {
		logger.Error().Err(err).
			Str("event_type", event.EventType).
			Str("entity_id", event.EntityID.String()).
			Msg("failed to publish pricing event")
	}
}
