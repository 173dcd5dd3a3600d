package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/backoffice/pkg/config"
)

type hubConfig struct {
	Buffer    int           `env:"HUB_BUFFER" envDefault:"64"`
	Heartbeat time.Duration `env:"HUB_HEARTBEAT" envDefault:"15s"`
	Prefix    string        `env:"HUB_REDIS_PREFIX" envDefault:"backoffice:events"`
}

type requiredConfig struct {
	DSN string `env:"DATABASE_URL,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load[hubConfig](config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.Buffer)
		assert.Equal(t, 15*time.Second, cfg.Heartbeat)
		assert.Equal(t, "backoffice:events", cfg.Prefix)
	})

	t.Run("explicit environment", func(t *testing.T) {
		cfg, err := config.Load[hubConfig](config.WithEnvironment(map[string]string{
			"HUB_BUFFER":    "8",
			"HUB_HEARTBEAT": "2s",
		}))
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Buffer)
		assert.Equal(t, 2*time.Second, cfg.Heartbeat)
	})

	t.Run("prefix", func(t *testing.T) {
		cfg, err := config.Load[hubConfig](
			config.WithPrefix("TEST_"),
			config.WithEnvironment(map[string]string{"TEST_HUB_BUFFER": "3", "HUB_BUFFER": "99"}),
		)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Buffer)
	})

	t.Run("required variable missing", func(t *testing.T) {
		_, err := config.Load[requiredConfig](config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := config.Load[hubConfig](config.WithEnvironment(map[string]string{"HUB_BUFFER": "many"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoad_Dotenv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("CONFIG_TEST_DSN=postgres://from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CONFIG_TEST_DSN") })

	type dsnConfig struct {
		DSN string `env:"CONFIG_TEST_DSN"`
	}

	cfg, err := config.Load[dsnConfig](config.WithDotenv(filepath.Join(dir, "missing.env"), file))
	require.NoError(t, err)
	assert.Equal(t, "postgres://from-file", cfg.DSN)
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{}))
	})
	assert.NotPanics(t, func() {
		cfg := config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{"DATABASE_URL": "postgres://x"}))
		assert.Equal(t, "postgres://x", cfg.DSN)
	})
}
