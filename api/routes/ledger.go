package routes

import (
	"github.com/gin-gonic/gin"

	"studyhall/internal/bookings"
	"studyhall/internal/coordinator"
	"studyhall/internal/notifications"
	"studyhall/internal/shared/config"
	"studyhall/internal/shared/database"
	"studyhall/internal/shared/middleware"
	"studyhall/internal/verification"
	"studyhall/pkg/logger"
	"studyhall/pkg/ratelimit"
)

// NewLedgerRouter wires the booking ledger service. The returned coordinator
// is handed back so main can start its sweep loop.
func NewLedgerRouter(cfg *config.Config, conns *database.Connections, producer notifications.Producer, log *logger.Logger) (*gin.Engine, *coordinator.Coordinator) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())

	limiter := ratelimit.NewRateLimiter(conns.Redis, rateLimitConfig(&cfg.RateLimit))
	router.Use(ratelimit.Middleware(limiter))

	registerHealth(router, conns)

	registryClient := coordinator.NewRegistryClient(&cfg.Registry, &cfg.JWT)
	taskRepo := coordinator.NewTaskRepository(conns.DB)
	coord := coordinator.New(taskRepo, registryClient, &cfg.Coordinator, log)

	bookingRepo := bookings.NewRepository(conns.DB)
	bookingService := bookings.NewService(bookingRepo, coord, producer, log)
	bookingController := bookings.NewController(bookingService)

	verificationRepo := verification.NewRepository(conns.DB)
	verificationService := verification.NewService(verificationRepo, bookingService, log)
	verificationController := verification.NewController(verificationService)

	coordinatorController := coordinator.NewController(coord)

	v1 := router.Group("/api/v1")
	bookings.RegisterRoutes(v1, bookingController, &cfg.JWT)
	verification.RegisterRoutes(v1, verificationController, &cfg.JWT)
	coordinator.RegisterRoutes(v1, coordinatorController, &cfg.JWT)

	return router, coord
}
