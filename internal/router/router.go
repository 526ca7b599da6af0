package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/patternwork/patternwork-backend/internal/config"
	"github.com/patternwork/patternwork-backend/internal/handler"
	"github.com/patternwork/patternwork-backend/internal/middleware"
	"github.com/patternwork/patternwork-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Assessment *handler.AssessmentHandler
	Question   *handler.QuestionHandler
}

// SetupRouter configures the Gin engine with middlewares and routes.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The submission endpoint keeps its historical path, without an API
	// version prefix: deployed clients post to /save-assessment.
	router.POST("/save-assessment", handlers.Assessment.Save)
	router.GET("/save-assessment", handlers.Assessment.Probe)

	api := router.Group("/api/v1")
	{
		// The catalog is immutable for the life of the process; let
		// clients cache it for an hour.
		api.GET("/questions", middleware.CacheControl(3600), handlers.Question.List)
	}

	return router
}
