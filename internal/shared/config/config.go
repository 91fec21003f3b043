package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the full application configuration, loaded from environment
// variables with sane defaults for local development.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	RateLimit   RateLimitConfig
	Registry    RegistryConfig
	Coordinator CoordinatorConfig
	Kafka       KafkaConfig
}

type ServerConfig struct {
	Port         string
	GinMode      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type RateLimitConfig struct {
	Enabled         bool
	WindowDuration  time.Duration
	DefaultRequests int
	BookingRequests int
	AdminRequests   int
	HealthRequests  int
}

// RegistryConfig locates the seat registry service for ledger-side callers.
type RegistryConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// CoordinatorConfig tunes the synchronous retry loop and the background
// reconciliation sweep.
type CoordinatorConfig struct {
	MaxAttempts    int
	RetryBackoff   time.Duration
	SweepInterval  time.Duration
	SweepBatchSize int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Enabled bool
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			GinMode:      getEnv("GIN_MODE", "debug"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "studyhall"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			CacheTTL: getDurationEnv("CACHE_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			Issuer: getEnv("JWT_ISSUER", "studyhall"),
		},
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT", 100),
			BookingRequests: getIntEnv("RATE_LIMIT_BOOKING", 30),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN", 60),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH", 300),
		},
		Registry: RegistryConfig{
			BaseURL:        getEnv("REGISTRY_BASE_URL", "http://localhost:8081"),
			RequestTimeout: getDurationEnv("REGISTRY_REQUEST_TIMEOUT", 3*time.Second),
		},
		Coordinator: CoordinatorConfig{
			MaxAttempts:    getIntEnv("COORDINATOR_MAX_ATTEMPTS", 3),
			RetryBackoff:   getDurationEnv("COORDINATOR_RETRY_BACKOFF", 200*time.Millisecond),
			SweepInterval:  getDurationEnv("COORDINATOR_SWEEP_INTERVAL", 30*time.Second),
			SweepBatchSize: getIntEnv("COORDINATOR_SWEEP_BATCH_SIZE", 100),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_BOOKING_TOPIC", "booking-events"),
			Enabled: getBoolEnv("KAFKA_ENABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
