package handler

import (
	"context"
	"net/http"
	"time"

	"storefront/catalog-service/internal/app/catalog/config"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "catalog-service"

// PingFunc проверяет доступность хранилища для /health
type PingFunc func(ctx context.Context) error

// SetupRoutes настраивает все маршруты Catalog Service
func SetupRoutes(catalogHandler *CatalogHandler, ping PingFunc, corsCfg config.CORSConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(cors.New(corsConfig(corsCfg)))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"service": serviceName,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	categories := api.Group("/categories")
	{
		categories.POST("/create-category", catalogHandler.CreateCategory)
		categories.PUT("/edit-category/:id", catalogHandler.UpdateCategory)
		categories.DELETE("/delete-category/:id", catalogHandler.DeleteCategory)

		categories.GET("", catalogHandler.GetAllCategories)
		categories.GET("/advanced", catalogHandler.ListCategories)
		categories.GET("/active", catalogHandler.GetActiveCategories)
		categories.GET("/main", catalogHandler.GetMainCategories)
		categories.GET("/sub/:parentId", catalogHandler.GetSubCategories)
		categories.GET("/id/:id", catalogHandler.GetCategory)
		categories.GET("/slug/:slug", catalogHandler.GetCategoryBySlug)
	}

	products := api.Group("/products")
	{
		products.GET("", catalogHandler.ListProducts)
		products.GET("/discounted", catalogHandler.GetDiscountedProducts)
		products.GET("/category/:categoryId", catalogHandler.GetProductsByCategory)
		products.GET("/:id", catalogHandler.GetProduct)

		products.POST("/create-product", catalogHandler.CreateProduct)
		products.PUT("/edit-product/:id", catalogHandler.UpdateProduct)
		products.PATCH("/:id/stock", catalogHandler.UpdateStock)
		products.PATCH("/:id/discount", catalogHandler.UpdateDiscount)
		products.PATCH("/:id/rating", catalogHandler.AddRating)
		products.DELETE("/delete-product/:id", catalogHandler.DeleteProduct)
	}

	return router
}

// corsConfig: "*" разрешает любой origin без credentials, иначе - явный список
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        300 * time.Second,
	}

	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowOrigins = cfg.AllowOrigins
	c.AllowWildcard = true
	c.AllowCredentials = true
	return c
}
