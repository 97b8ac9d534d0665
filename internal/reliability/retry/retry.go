package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Config holds retry strategy configuration
type Config struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultConfig returns the backoff used while waiting for the store at
// startup
func DefaultConfig(maxAttempts int) *Config {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Config{
		MaxAttempts:       maxAttempts,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Retryable is a function that can be retried
type Retryable[T any] func(ctx context.Context) (T, error)

// Do executes a retryable function with exponential backoff. Cancelling
// ctx stops both the attempts and the wait between them.
func Do[T any](ctx context.Context, cfg *Config, log *slog.Logger, op string, fn Retryable[T]) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if attempt == cfg.MaxAttempts {
			break
		}

		backoff := calculateBackoff(attempt-1, cfg)
		log.Warn("operation failed, retrying",
			slog.String("operation", op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, fmt.Errorf("operation '%s' failed after %d attempts: %w", op, cfg.MaxAttempts, lastErr)
}

// calculateBackoff returns exponential backoff duration
func calculateBackoff(attemptNum int, cfg *Config) time.Duration {
	backoff := time.Duration(float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffMultiplier, float64(attemptNum)))
	if backoff > cfg.MaxBackoff {
		backoff = cfg.MaxBackoff
	}
	return backoff
}
