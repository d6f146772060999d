package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pantry/pkg/logger"
	"pantry/pkg/metrics"
)

func SetupRoutes(pricingHandler *PricingHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("pricing-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "pricing-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	categories := router.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	{
		categories.GET("", pricingHandler.GetAllCategories)
		categories.GET("/:id", pricingHandler.GetCategory)
		categories.POST("", pricingHandler.CreateCategory)
		categories.PUT("/:id", pricingHandler.UpdateCategory)
		categories.DELETE("/:id", pricingHandler.DeleteCategory)
	}

	productTypes := router.Group("/product-types")
	productTypes.Use(authMiddleware.Authenticate())
	{
		productTypes.GET("", pricingHandler.GetAllProductTypes)
		productTypes.GET("/:id", pricingHandler.GetProductType)
		productTypes.GET("/:id/unit", pricingHandler.GetProductTypeUnit)

		// The reference catalog is shared, only admins may change it.
		staffOnly := productTypes.Group("")
		staffOnly.Use(authMiddleware.RequireRole("admin"))
		{
			staffOnly.POST("", pricingHandler.CreateProductType)
			staffOnly.PUT("/:id", pricingHandler.UpdateProductType)
			staffOnly.DELETE("/:id", pricingHandler.DeleteProductType)
		}
	}

	// Owner-scoped priced instances.
	products := router.Group("/products")
	products.Use(authMiddleware.Authenticate())
	{
		products.GET("", pricingHandler.GetUserProductInstances)
		products.GET("/:id", pricingHandler.GetProductInstance)
		products.POST("", pricingHandler.CreateProductInstance)
		products.PUT("/:id", pricingHandler.UpdateProductInstance)
		products.DELETE("/:id", pricingHandler.DeleteProductInstance)
	}

	recipes := router.Group("/recipes")
	recipes.Use(authMiddleware.Authenticate())
	{
		recipes.GET("", pricingHandler.GetUserRecipes)
		recipes.GET("/:id", pricingHandler.GetRecipe)
		recipes.POST("", pricingHandler.CreateRecipe)
		recipes.PUT("/:id", pricingHandler.UpdateRecipe)
		recipes.DELETE("/:id", pricingHandler.DeleteRecipe)
		recipes.POST("/:id/recalculate", pricingHandler.RecalculateRecipe)
		recipes.POST("/:id/items", pricingHandler.AddRecipeItem)
	}

	recipeItems := router.Group("/recipe-items")
	recipeItems.Use(authMiddleware.Authenticate())
	{
		recipeItems.DELETE("/:id", pricingHandler.DeleteRecipeItem)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(authMiddleware.RequireRole("admin"))
	{
		admin.POST("/import", pricingHandler.ImportCatalog)
	}

	return router
}
