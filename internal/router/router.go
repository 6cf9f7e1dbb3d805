// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/protein-search/internal/config"
	"github.com/javajoker/protein-search/internal/handlers"
	"github.com/javajoker/protein-search/internal/middleware"
	"github.com/javajoker/protein-search/internal/services"
	"github.com/javajoker/protein-search/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	catalogService := services.NewCatalogService(db)
	reviewService := services.NewReviewService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	utils.SetJWTConfig(cfg.JWT.SecretKey, cfg.JWT.Issuer)

	// Initialize Gin router
	r := gin.New()
	r.RedirectTrailingSlash = true

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": "1.0.0",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/products/")
	})

	products := r.Group("/products")
	{
		products.GET("/", middleware.OptionalAuth(), productHandler.ListProducts)
		products.GET("/:id/", middleware.OptionalAuth(), productHandler.GetProduct)
		products.POST("/:id/review/",
			middleware.AuthRequired(),
			middleware.ReviewRateLimit(cfg.RateLimit.ReviewsPerMinute),
			reviewHandler.SubmitReview,
		)
	}

	return r
}
