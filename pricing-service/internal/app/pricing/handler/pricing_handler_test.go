package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantry/pricing-service/internal/app/pricing/costing"
	"pantry/pricing-service/internal/app/pricing/entity"
	"pantry/pricing-service/internal/app/pricing/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockPricingService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockPricingService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockPricingService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockPricingService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPricingService) CreateProductType(ctx context.Context, req *entity.CreateProductTypeRequest) (*entity.ProductType, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductType), args.Error(1)
}

func (m *MockPricingService) GetProductType(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductType), args.Error(1)
}

func (m *MockPricingService) GetProductTypeUnit(ctx context.Context, id uuid.UUID) (*entity.ProductTypeUnitResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductTypeUnitResponse), args.Error(1)
}

func (m *MockPricingService) GetAllProductTypes(ctx context.Context) ([]entity.ProductType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductType), args.Error(1)
}

func (m *MockPricingService) UpdateProductType(ctx context.Context, id uuid.UUID, req *entity.UpdateProductTypeRequest) (*entity.ProductType, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductType), args.Error(1)
}

func (m *MockPricingService) DeleteProductType(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPricingService) CreateProductInstance(ctx context.Context, userID uuid.UUID, req *entity.CreateProductInstanceRequest) (*entity.ProductInstance, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductInstance), args.Error(1)
}

func (m *MockPricingService) GetProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.ProductInstance, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductInstance), args.Error(1)
}

func (m *MockPricingService) GetUserProductInstances(ctx context.Context, userID uuid.UUID) ([]entity.ProductInstance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductInstance), args.Error(1)
}

func (m *MockPricingService) UpdateProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *entity.UpdateProductInstanceRequest) (*entity.ProductInstance, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductInstance), args.Error(1)
}

func (m *MockPricingService) DeleteProductInstance(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockPricingService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *entity.CreateRecipeRequest) (*entity.Recipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Recipe), args.Error(1)
}

func (m *MockPricingService) GetRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Recipe), args.Error(1)
}

func (m *MockPricingService) GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]entity.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Recipe), args.Error(1)
}

func (m *MockPricingService) UpdateRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *entity.UpdateRecipeRequest) (*entity.Recipe, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Recipe), args.Error(1)
}

func (m *MockPricingService) DeleteRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockPricingService) RecalculateRecipe(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.RecipeCostResponse, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RecipeCostResponse), args.Error(1)
}

func (m *MockPricingService) AddRecipeItem(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID, req *entity.AddRecipeItemRequest) (*entity.RecipeItem, error) {
	args := m.Called(ctx, userID, recipeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RecipeItem), args.Error(1)
}

func (m *MockPricingService) DeleteRecipeItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockPricingService) ImportCatalog(ctx context.Context, r io.Reader) (*entity.ImportResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ImportResult), args.Error(1)
}

// setAuthContext injects the identity AuthMiddleware would have set.
func setAuthContext(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Set("role", role)
		c.Next()
	}
}

func setupTestRouter(mockService *MockPricingService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setAuthContext(userID, "user"))

	h := NewPricingHandler(mockService)
	router.POST("/categories", h.CreateCategory)
	router.GET("/categories", h.GetAllCategories)
	router.GET("/product-types/:id/unit", h.GetProductTypeUnit)
	router.POST("/products", h.CreateProductInstance)
	router.GET("/products/:id", h.GetProductInstance)
	router.GET("/recipes/:id", h.GetRecipe)
	router.POST("/recipes/:id/recalculate", h.RecalculateRecipe)
	router.POST("/recipes/:id/items", h.AddRecipeItem)
	router.DELETE("/recipe-items/:id", h.DeleteRecipeItem)
	router.POST("/admin/import", h.ImportCatalog)

	return router
}

func TestCreateProductInstanceHandler_Success(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	typeID := uuid.New()
	instance := &entity.ProductInstance{
		ID:            uuid.New(),
		ProductTypeID: typeID,
		UserID:        userID,
		TotalWeight:   1000,
		PricePerKilo:  10000,
		Unit:          costing.UnitGram,
		WasteWeight:   100,
		NetWeight:     900,
		TotalPrice:    11000,
	}
	mockService.On("CreateProductInstance", mock.Anything, userID, mock.AnythingOfType("*entity.CreateProductInstanceRequest")).
		Return(instance, nil)

	body, _ := json.Marshal(entity.CreateProductInstanceRequest{
		ProductTypeID: typeID,
		TotalWeight:   1000,
		PricePerKilo:  10000,
	})
	req, _ := http.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got entity.ProductInstance
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 100.0, got.WasteWeight)
	assert.Equal(t, 900.0, got.NetWeight)
	assert.Equal(t, 11000.0, got.TotalPrice)
}

func TestCreateProductInstanceHandler_InvalidBody(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	req, _ := http.NewRequest(http.MethodPost, "/products", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateProductInstance", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProductInstanceHandler_Forbidden(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	instanceID := uuid.New()
	mockService.On("GetProductInstance", mock.Anything, userID, instanceID).
		Return(nil, service.ErrForbidden)

	req, _ := http.NewRequest(http.MethodGet, "/products/"+instanceID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetRecipeHandler_NotFound(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	recipeID := uuid.New()
	mockService.On("GetRecipe", mock.Anything, userID, recipeID).
		Return(nil, service.ErrRecipeNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/recipes/"+recipeID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecipeHandler_InvalidID(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	req, _ := http.NewRequest(http.MethodGet, "/recipes/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetRecipe", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecalculateRecipeHandler_Success(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	recipeID := uuid.New()
	mockService.On("RecalculateRecipe", mock.Anything, userID, recipeID).
		Return(&entity.RecipeCostResponse{
			TotalCost:        11000,
			Profit:           9000,
			ProfitPercentage: 81.81818181818181,
		}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/recipes/"+recipeID.String()+"/recalculate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got entity.RecipeCostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 11000.0, got.TotalCost)
	assert.Equal(t, 9000.0, got.Profit)
	assert.InDelta(t, 81.818181, got.ProfitPercentage, 1e-4)
}

func TestAddRecipeItemHandler_ValidationError(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	// Quantity must be strictly positive.
	body, _ := json.Marshal(entity.AddRecipeItemRequest{
		ProductInstanceID: uuid.New(),
		Quantity:          0,
	})
	req, _ := http.NewRequest(http.MethodPost, "/recipes/"+uuid.NewString()+"/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "AddRecipeItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteRecipeItemHandler_Success(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	itemID := uuid.New()
	mockService.On("DeleteRecipeItem", mock.Anything, userID, itemID).Return(nil)

	req, _ := http.NewRequest(http.MethodDelete, "/recipe-items/"+itemID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestImportCatalogHandler_Success(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	mockService.On("ImportCatalog", mock.Anything, mock.Anything).
		Return(&entity.ImportResult{CategoriesCreated: 1, ProductTypesCreated: 2}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/admin/import", strings.NewReader("Vegetables,,\nCarrot,100,10\n"))
	req.Header.Set("Content-Type", "text/csv")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got entity.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.CategoriesCreated)
	assert.Equal(t, 2, got.ProductTypesCreated)
}

func TestGetProductTypeUnitHandler_Success(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockPricingService)
	router := setupTestRouter(mockService, userID)

	typeID := uuid.New()
	mockService.On("GetProductTypeUnit", mock.Anything, typeID).
		Return(&entity.ProductTypeUnitResponse{Unit: costing.UnitPiece}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/product-types/"+typeID.String()+"/unit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unit":"piece"`)
}
