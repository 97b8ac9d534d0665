package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers understood by the server
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Environment          string
	ServerPort           int
	AdminPort            int
	LogLevel             string
	StoreDriver          string
	StoreConnectAttempts int
	MongoURI             string
	MongoDatabase        string
	Postgres             PostgresConfig
	RedisURL             string
	UpstreamBaseURL      string
	UpstreamTimeout      time.Duration
	OTLPEndpoint         string
}

// PostgresConfig is only consulted when StoreDriver is postgres
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("SERVER_PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	adminPort, err := strconv.Atoi(getEnv("ADMIN_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_PORT: %w", err)
	}

	pgPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT: %w", err)
	}

	upstreamTimeout, err := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT_SECONDS: %w", err)
	}

	attempts, err := strconv.Atoi(getEnv("STORE_CONNECT_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_CONNECT_ATTEMPTS: %w", err)
	}
	if attempts < 1 {
		attempts = 1
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", DriverMongo))
	switch driver {
	case DriverMongo, DriverPostgres, DriverRedis, DriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER: %q", driver)
	}

	return &Config{
		Environment:          getEnv("ENVIRONMENT", "development"),
		ServerPort:           port,
		AdminPort:            adminPort,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		StoreDriver:          driver,
		StoreConnectAttempts: attempts,
		// Credentials are injected through the environment, never embedded.
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "swift"),
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     pgPort,
			User:     getEnv("POSTGRES_USER", "swift"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Database: getEnv("POSTGRES_DB", "swift"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		UpstreamBaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "https://jsonplaceholder.typicode.com"), "/"),
		UpstreamTimeout: time.Duration(upstreamTimeout) * time.Second,
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
