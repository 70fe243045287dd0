package router

import (
	"net/http"
	"time"

	"github.com/aurumascend/raisesignal-backend/config"
	"github.com/aurumascend/raisesignal-backend/handlers"
	"github.com/aurumascend/raisesignal-backend/middleware"
	"github.com/aurumascend/raisesignal-backend/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config            *config.Config
	SubmissionHandler *handlers.SubmissionHandler
	HealthHandler     *handlers.HealthHandler
	RedisClient       *redis.Client
	Logger            *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))

	// Health and metrics
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.Liveness)
	r.GET("/health/readiness", deps.HealthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Embedded form assets served to the marketing pages
	r.StaticFS("/static", http.FS(web.Assets()))

	// Public submission endpoints, rate limited per client IP
	api := r.Group("/api")
	api.Use(middleware.SubmissionRateLimiter(
		deps.RedisClient,
		deps.Config.RateLimit.SubmissionsPerWindow,
		time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
	))
	{
		api.POST("/apply", deps.SubmissionHandler.SubmitApplicationHandler)
		api.POST("/contact", deps.SubmissionHandler.SubmitContactHandler)
	}

	return r
}
