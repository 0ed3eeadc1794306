package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.True(t, cfg.SeedComponents)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.SnapshotCacheTTL)
	assert.Equal(t, 5, cfg.StoreFailureThreshold)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("SNAPSHOT_CACHE_TTL", "2m")
	t.Setenv("SEED_COMPONENTS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 2*time.Minute, cfg.SnapshotCacheTTL)
	assert.False(t, cfg.SeedComponents)
}
