package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "ADMIN_PORT", "STORE_DRIVER", "UPSTREAM_BASE_URL", "UPSTREAM_TIMEOUT_SECONDS", "STORE_CONNECT_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, 9090, cfg.AdminPort)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", cfg.UpstreamBaseURL)
	assert.Zero(t, cfg.UpstreamTimeout, "upstream calls wait as long as they take unless configured")
	assert.Equal(t, 5, cfg.StoreConnectAttempts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "4000")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("UPSTREAM_BASE_URL", "http://upstream.local/")
	t.Setenv("STORE_CONNECT_ATTEMPTS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.ServerPort)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "http://upstream.local", cfg.UpstreamBaseURL)
	assert.Equal(t, 1, cfg.StoreConnectAttempts)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "abc")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid SERVER_PORT")
	})

	t.Run("driver", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "")
		t.Setenv("STORE_DRIVER", "cassandra")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid STORE_DRIVER")
	})
}
