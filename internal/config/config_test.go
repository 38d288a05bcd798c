package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/product-import/internal/config"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingDatabaseURL)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/products")
	for _, key := range []string{
		"REDIS_URL", "PORT", "APP_ENV", "IMPORT_WORKERS", "IMPORT_BATCH_SIZE",
		"IMPORT_QUEUE", "IMPORT_STORAGE_DIR", "IMPORT_RESULT_TTL", "IMPORT_ACTIVE_TTL",
		"WEBHOOK_TIMEOUT", "UPLOAD_MAX_BYTES", "MIGRATIONS_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, config.QueueRedis, cfg.Queue)
	assert.Equal(t, time.Hour, cfg.ResultTTL)
	assert.Equal(t, 24*time.Hour, cfg.ActiveTTL)
	assert.Equal(t, 5*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/products")
	t.Setenv("IMPORT_WORKERS", "50")
	t.Setenv("IMPORT_BATCH_SIZE", "-3")
	t.Setenv("IMPORT_QUEUE", "MEMORY")
	t.Setenv("IMPORT_RESULT_TTL", "90s")
	t.Setenv("WEBHOOK_TIMEOUT", "not-a-duration")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, config.QueueMemory, cfg.Queue)
	assert.Equal(t, 90*time.Second, cfg.ResultTTL)
	assert.Equal(t, 5*time.Second, cfg.WebhookTimeout)
}
