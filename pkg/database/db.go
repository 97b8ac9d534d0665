package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/pushpak1497/swift/pkg/config"
)

// Config holds database configuration
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// FromAppConfig maps the postgres section of the app config onto pool settings
func FromAppConfig(pg config.PostgresConfig) *Config {
	cfg := DefaultConfig()
	cfg.Host = pg.Host
	cfg.Port = pg.Port
	cfg.User = pg.User
	cfg.Password = pg.Password
	cfg.Database = pg.Database
	cfg.SSLMode = pg.SSLMode
	return cfg
}

// DSN renders the lib/pq keyword/value connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}

// ConnectionPool manages database connections
type ConnectionPool struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewConnectionPool opens a pool and pings it before returning
func NewConnectionPool(ctx context.Context, config *Config, logger *slog.Logger) (*ConnectionPool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	ctxTest, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctxTest); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connected successfully",
		slog.String("host", config.Host),
		slog.String("database", config.Database),
	)

	return &ConnectionPool{
		db:     db,
		logger: logger,
	}, nil
}

// GetDB returns the underlying sql.DB connection
func (cp *ConnectionPool) GetDB() *sql.DB {
	return cp.db
}

// Close closes the database connection
func (cp *ConnectionPool) Close() error {
	if cp.db != nil {
		return cp.db.Close()
	}
	return nil
}

// Health checks the database health
func (cp *ConnectionPool) Health(ctx context.Context) error {
	ctxTest, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return cp.db.PingContext(ctxTest)
}

// DefaultConfig returns default database configuration for development
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            5432,
		User:            "swift",
		Database:        "swift",
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}
