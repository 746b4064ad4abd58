package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("restaurant-menu")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, 15*time.Second, cfg.Sync.Interval)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SYNC_INTERVAL", "1m")
	t.Setenv("SYNC_ENABLED", "false")

	cfg, err := Load("restaurant-menu")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Service.Port)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.False(t, cfg.Sync.Enabled)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("restaurant-menu")
	require.NoError(t, err)

	cfg.Service.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Service.Port = 8080
	cfg.Sync.Enabled = true
	cfg.Sync.Source = ""
	assert.Error(t, cfg.Validate())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db",
			Port:     5432,
			Database: "restaurant",
			User:     "app",
			Password: "secret",
		},
	}

	assert.Equal(t, "postgres://app:secret@db:5432/restaurant?sslmode=disable", cfg.DatabaseURL())
}
