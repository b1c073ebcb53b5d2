package http

import (
	"github.com/gin-gonic/gin"
	"github.com/greenlens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		sustainability := v1.Group("/sustainability")
		{
			sustainability.POST("/annotate", handler.Annotate)
			sustainability.POST("/classify", handler.Classify)
			sustainability.POST("/product-page", handler.ProductPage)
			sustainability.GET("/popup", handler.Popup)
			sustainability.GET("/current", handler.CurrentSnapshot)
		}

		v1.POST("/messages", handler.SendMessage)
	}

	return router
}
