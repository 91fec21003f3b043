package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studyhall/internal/seats"
	"studyhall/internal/shared/config"
	"studyhall/internal/shared/database"
	"studyhall/internal/shared/middleware"
	"studyhall/internal/shifts"
	"studyhall/pkg/cache"
	"studyhall/pkg/logger"
	"studyhall/pkg/ratelimit"
)

// NewRegistryRouter wires the seat registry service.
func NewRegistryRouter(cfg *config.Config, conns *database.Connections, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())

	limiter := ratelimit.NewRateLimiter(conns.Redis, rateLimitConfig(&cfg.RateLimit))
	router.Use(ratelimit.Middleware(limiter))

	registerHealth(router, conns)

	cacheService := cache.NewService(conns.Redis)

	seatRepo := seats.NewRepository(conns.DB)
	seatService := seats.NewService(seatRepo, cacheService, log)
	seatController := seats.NewController(seatService)

	shiftRepo := shifts.NewRepository(conns.DB)
	shiftService := shifts.NewService(shiftRepo)
	shiftController := shifts.NewController(shiftService)

	v1 := router.Group("/api/v1")
	seats.RegisterRoutes(v1, seatController, &cfg.JWT)
	shifts.RegisterRoutes(v1, shiftController, &cfg.JWT)

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

func rateLimitConfig(cfg *config.RateLimitConfig) *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:         cfg.Enabled,
		WindowDuration:  cfg.WindowDuration,
		DefaultRequests: cfg.DefaultRequests,
		BookingRequests: cfg.BookingRequests,
		AdminRequests:   cfg.AdminRequests,
		HealthRequests:  cfg.HealthRequests,
	}
}

func registerHealth(router *gin.Engine, conns *database.Connections) {
	router.GET("/health", func(c *gin.Context) {
		if err := conns.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}
