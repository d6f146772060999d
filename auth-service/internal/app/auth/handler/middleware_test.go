package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pantry/auth-service/internal/app/auth/entity"
	"pantry/auth-service/internal/app/auth/repository/mocks"
	"pantry/auth-service/internal/app/auth/service"
	"pantry/auth-service/internal/app/auth/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type middlewareFixture struct {
	router    *gin.Engine
	jwt       *util.JWTManager
	tokenRepo *mocks.MockTokenRepository
}

func newMiddlewareFixture() *middlewareFixture {
	gin.SetMode(gin.TestMode)

	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	authService := service.NewAuthService(userRepo, tokenRepo, jwtManager)
	authMiddleware := NewAuthMiddleware(authService, jwtManager)

	router := gin.New()
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID.(uuid.UUID).String()})
	})
	router.GET("/admin", authMiddleware.Authenticate(), authMiddleware.RequireRole(entity.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &middlewareFixture{router: router, jwt: jwtManager, tokenRepo: tokenRepo}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	f := newMiddlewareFixture()
	userID := uuid.New()
	token, err := f.jwt.GenerateAccessToken(userID, "chef@example.com", entity.RoleUser)
	require.NoError(t, err)

	f.tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	// Arrange
	f := newMiddlewareFixture()

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	f.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	// Arrange
	f := newMiddlewareFixture()

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	f.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization header format")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	// Arrange
	f := newMiddlewareFixture()
	expiredJWT := util.NewJWTManager("test-secret", time.Nanosecond, 7*24*time.Hour)
	token, _ := expiredJWT.GenerateAccessToken(uuid.New(), "chef@example.com", entity.RoleUser)
	time.Sleep(10 * time.Millisecond)

	f.tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddleware_BlacklistedToken(t *testing.T) {
	// Arrange
	f := newMiddlewareFixture()
	token, _ := f.jwt.GenerateAccessToken(uuid.New(), "chef@example.com", entity.RoleUser)

	f.tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(true, nil)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_RequireRole_Denied(t *testing.T) {
	// Arrange
	f := newMiddlewareFixture()
	token, _ := f.jwt.GenerateAccessToken(uuid.New(), "chef@example.com", entity.RoleUser)

	f.tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

func TestAuthMiddleware_RequireRole_Allowed(t *testing.T) {
	// Arrange
	f := newMiddlewareFixture()
	token, _ := f.jwt.GenerateAccessToken(uuid.New(), "admin@example.com", entity.RoleAdmin)

	f.tokenRepo.On("IsBlacklisted", mock.Anything, token).Return(false, nil)

	// Act
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	f.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
}
