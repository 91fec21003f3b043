package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studyhall/internal/shared/config"
	"studyhall/pkg/logger"
)

// Connections bundles the handles shared by every feature package.
type Connections struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// Init opens the Postgres and Redis connections and verifies both.
func Init(cfg *config.Config) (*Connections, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	gormLogLevel := gormlogger.Warn
	if cfg.Server.GinMode == "debug" {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
		// Driver errors like unique violations become gorm sentinel errors
		// so repositories never import the pg driver directly.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.GetDefault().WithError(err).Warn("redis unavailable, caching and rate limiting degraded")
	}

	logger.GetDefault().Info("database connections established",
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
		"redis_host", cfg.Redis.Host,
	)

	return &Connections{DB: db, Redis: redisClient}, nil
}

// HealthCheck pings both backends.
func (c *Connections) HealthCheck(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases both connections.
func (c *Connections) Close() error {
	if err := c.Redis.Close(); err != nil {
		logger.GetDefault().WithError(err).Warn("failed to close redis connection")
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
