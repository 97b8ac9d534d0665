package retry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastConfig(attempts int) *Config {
	return &Config{
		MaxAttempts:       attempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2,
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(3), quiet(), "connect", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection refused")
		}
		return "connected", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "connected", got)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUp(t *testing.T) {
	sentinel := errors.New("connection refused")
	calls := 0
	_, err := Do(context.Background(), fastConfig(2), quiet(), "connect", func(context.Context) (int, error) {
		calls++
		return 0, sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestDoStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{MaxAttempts: 5, InitialBackoff: time.Hour, MaxBackoff: time.Hour, BackoffMultiplier: 1}

	calls := 0
	_, err := Do(ctx, cfg, quiet(), "connect", func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("down")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestCalculateBackoffIsCapped(t *testing.T) {
	cfg := &Config{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, BackoffMultiplier: 2}

	assert.Equal(t, 100*time.Millisecond, calculateBackoff(0, cfg))
	assert.Equal(t, 400*time.Millisecond, calculateBackoff(2, cfg))
	assert.Equal(t, time.Second, calculateBackoff(10, cfg))
}

func TestDefaultConfigFloorsAttempts(t *testing.T) {
	assert.Equal(t, 1, DefaultConfig(0).MaxAttempts)
	assert.Equal(t, 5, DefaultConfig(5).MaxAttempts)
}
