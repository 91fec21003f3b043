package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studyhall/api/routes"
	"studyhall/internal/notifications"
	"studyhall/internal/shared/config"
	"studyhall/internal/shared/database"
	"studyhall/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.GetDefault().Debug("no .env file found, using environment")
	}

	cfg := config.Load()
	gin.SetMode(cfg.Server.GinMode)
	log := logger.New()
	logger.SetDefault(log)

	conns, err := database.Init(cfg)
	if err != nil {
		log.WithError(err).Error("failed to initialize database")
		os.Exit(1)
	}
	defer conns.Close()

	if err := database.MigrateLedger(conns.DB); err != nil {
		log.WithError(err).Error("failed to migrate ledger schema")
		os.Exit(1)
	}

	// Kafka is optional; the ledger runs fine without lifecycle events.
	var producer notifications.Producer
	if cfg.Kafka.Enabled {
		producer, err = notifications.NewProducer(&cfg.Kafka, log)
		if err != nil {
			log.WithError(err).Warn("kafka unavailable, booking events disabled")
			producer = nil
		} else {
			defer producer.Close()
		}
	}

	router, coord := routes.NewLedgerRouter(cfg, conns, producer, log)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	coord.Start(sweepCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("ledger service listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("ledger server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down ledger service")

	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("ledger service stopped")
}
