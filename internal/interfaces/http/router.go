// Package http wires the HTTP surface: the scan and health endpoints,
// their middleware chain, and the dependency graph behind them.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sonar/internal/application/scan/usecases"
	"sonar/internal/infrastructure/config"
	"sonar/internal/infrastructure/fetch"
	"sonar/internal/infrastructure/probe"
	"sonar/internal/infrastructure/ratelimit"
	"sonar/internal/infrastructure/scanner"
	healthhandler "sonar/internal/interfaces/http/handlers/health"
	scanhandler "sonar/internal/interfaces/http/handlers/scan"
	"sonar/internal/interfaces/http/middleware"
	"sonar/internal/shared/logger"

	_ "sonar/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	engine        *gin.Engine
	scanHandler   *scanhandler.Handler
	healthHandler *healthhandler.Handler
	rateLimiter   ratelimit.RateLimiter
	cfg           *config.Config
	log           logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies. The Redis
// client may be nil, in which case rate limiting is disabled.
func NewRouter(cfg *config.Config, redisClient *redis.Client, log logger.Interface) *Router {
	engine := gin.New()

	fetcher := fetch.NewFetcher(cfg.Fetch, log.Named("fetch"))
	scn := scanner.New(probe.NewNetProber(), log.Named("scanner"))
	scanUC := usecases.NewScanUseCase(fetcher, scn, cfg.Scan, log.Named("scan"))

	var limiter ratelimit.RateLimiter
	if redisClient != nil && cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	return &Router{
		engine:        engine,
		scanHandler:   scanhandler.NewHandler(scanUC),
		healthHandler: healthhandler.NewHandler(),
		rateLimiter:   limiter,
		cfg:           cfg,
		log:           log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/health", r.healthHandler.Check)

	api := r.engine.Group("/api")
	{
		if r.rateLimiter != nil {
			api.POST("/scan", middleware.RateLimit(r.rateLimiter, r.cfg.RateLimit, r.log), r.scanHandler.Scan)
		} else {
			api.POST("/scan", r.scanHandler.Scan)
		}
	}
}

// GetEngine returns the underlying gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
