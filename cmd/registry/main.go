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
	"studyhall/internal/shared/config"
	"studyhall/internal/shared/database"
	"studyhall/internal/shared/validation"
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
	validation.RegisterCustomValidators()

	conns, err := database.Init(cfg)
	if err != nil {
		log.WithError(err).Error("failed to initialize database")
		os.Exit(1)
	}
	defer conns.Close()

	if err := database.MigrateRegistry(conns.DB); err != nil {
		log.WithError(err).Error("failed to migrate registry schema")
		os.Exit(1)
	}

	router := routes.NewRegistryRouter(cfg, conns, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("registry service listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("registry server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down registry service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("registry service stopped")
}
