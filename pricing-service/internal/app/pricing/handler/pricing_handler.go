package handler

import (
	"errors"
	"net/http"

	"pantry/pricing-service/internal/app/pricing/entity"
	"pantry/pricing-service/internal/app/pricing/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PricingHandler struct {
	pricingService service.PricingServiceInterface
	validator      *validator.Validate
}

func NewPricingHandler(pricingService service.PricingServiceInterface) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		validator:      validator.New(),
	}
}

// currentUserID reads the authenticated user's ID set by AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}

	idStr, ok := raw.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return uuid.Nil, false
	}

	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// === CATEGORIES HANDLERS ===

func (h *PricingHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	category, err := h.pricingService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *PricingHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.pricingService.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *PricingHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.pricingService.GetAllCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get categories"})
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

func (h *PricingHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	category, err := h.pricingService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *PricingHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Category deleted successfully"})
}

// === PRODUCT TYPES HANDLERS ===

func (h *PricingHandler) CreateProductType(c *gin.Context) {
	var req entity.CreateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	productType, err := h.pricingService.CreateProductType(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product type"})
		return
	}

	c.JSON(http.StatusCreated, entity.NewProductTypeResponse(*productType))
}

func (h *PricingHandler) GetProductType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	productType, err := h.pricingService.GetProductType(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product type"})
		return
	}

	c.JSON(http.StatusOK, entity.NewProductTypeResponse(*productType))
}

// GetProductTypeUnit serves the unit lookup used when filling the instance
// form, before any instance exists.
func (h *PricingHandler) GetProductTypeUnit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	unit, err := h.pricingService.GetProductTypeUnit(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product type unit"})
		return
	}

	c.JSON(http.StatusOK, unit)
}

func (h *PricingHandler) GetAllProductTypes(c *gin.Context) {
	productTypes, err := h.pricingService.GetAllProductTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product types"})
		return
	}

	response := entity.ProductTypeListResponse{
		ProductTypes: make([]entity.ProductTypeResponse, 0, len(productTypes)),
		Total:        len(productTypes),
	}
	for _, t := range productTypes {
		response.ProductTypes = append(response.ProductTypes, entity.NewProductTypeResponse(t))
	}

	c.JSON(http.StatusOK, response)
}

func (h *PricingHandler) UpdateProductType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	productType, err := h.pricingService.UpdateProductType(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product type not found"})
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product type"})
		}
		return
	}

	c.JSON(http.StatusOK, entity.NewProductTypeResponse(*productType))
}

func (h *PricingHandler) DeleteProductType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeleteProductType(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product type"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product type deleted successfully"})
}

// === PRODUCT INSTANCES HANDLERS ===

func (h *PricingHandler) CreateProductInstance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.CreateProductInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	instance, err := h.pricingService.CreateProductInstance(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, instance)
}

func (h *PricingHandler) GetProductInstance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	instance, err := h.pricingService.GetProductInstance(c.Request.Context(), userID, id)
	if err != nil {
		respondOwnedError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, instance)
}

func (h *PricingHandler) GetUserProductInstances(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	instances, err := h.pricingService.GetUserProductInstances(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductInstanceListResponse{
		Products: instances,
		Total:    len(instances),
	})
}

func (h *PricingHandler) UpdateProductInstance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateProductInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	instance, err := h.pricingService.UpdateProductInstance(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondOwnedError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, instance)
}

func (h *PricingHandler) DeleteProductInstance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeleteProductInstance(c.Request.Context(), userID, id); err != nil {
		respondOwnedError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product deleted successfully"})
}

// === RECIPES HANDLERS ===

func (h *PricingHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	recipe, err := h.pricingService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, entity.NewRecipeResponse(*recipe))
}

func (h *PricingHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.pricingService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondOwnedError(c, err, "recipe")
		return
	}

	c.JSON(http.StatusOK, entity.NewRecipeResponse(*recipe))
}

func (h *PricingHandler) GetUserRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.pricingService.GetUserRecipes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recipes"})
		return
	}

	response := entity.RecipeListResponse{
		Recipes: make([]entity.RecipeResponse, 0, len(recipes)),
		Total:   len(recipes),
	}
	for _, r := range recipes {
		response.Recipes = append(response.Recipes, entity.NewRecipeResponse(r))
	}

	c.JSON(http.StatusOK, response)
}

func (h *PricingHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	recipe, err := h.pricingService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondOwnedError(c, err, "recipe")
		return
	}

	c.JSON(http.StatusOK, entity.NewRecipeResponse(*recipe))
}

func (h *PricingHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondOwnedError(c, err, "recipe")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Recipe deleted successfully"})
}

// RecalculateRecipe handles POST /recipes/:id/recalculate.
func (h *PricingHandler) RecalculateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cost, err := h.pricingService.RecalculateRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondOwnedError(c, err, "recipe")
		return
	}

	c.JSON(http.StatusOK, cost)
}

// === RECIPE ITEMS HANDLERS ===

func (h *PricingHandler) AddRecipeItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req entity.AddRecipeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	item, err := h.pricingService.AddRecipeItem(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		case errors.Is(err, service.ErrProductInstanceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add recipe item"})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *PricingHandler) DeleteRecipeItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeleteRecipeItem(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe item not found"})
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe item"})
		}
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Recipe item deleted successfully"})
}

// === IMPORT HANDLER ===

// ImportCatalog handles POST /admin/import with a CSV body.
func (h *PricingHandler) ImportCatalog(c *gin.Context) {
	result, err := h.pricingService.ImportCatalog(c.Request.Context(), c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid CSV payload"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondOwnedError maps errors from owner-scoped operations to HTTP statuses.
func respondOwnedError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, service.ErrProductInstanceNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrProductTypeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process " + resource})
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
