package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	var cfg Config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	})
	if err != nil {
		return nil, err
	}
	return &cfg, cfg.validate()
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET":             "s3cret",
		"KEYCLOAK_CLIENT_ID":     "blog-admin",
		"KEYCLOAK_CLIENT_SECRET": "x",
	})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "admin", cfg.JWT.AdminRole)
	assert.Equal(t, 10*time.Minute, cfg.Redis.GuardTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 4, cfg.Workers.Core)
	assert.Equal(t, 16, cfg.Workers.Max)
	assert.True(t, cfg.Development())
}

func TestRejectsUnknownDriver(t *testing.T) {
	_, err := load(t, map[string]string{
		"JWT_SECRET":             "s3cret",
		"KEYCLOAK_CLIENT_SECRET": "x",
		"STORE_DRIVER":           "sqlite",
	})
	require.Error(t, err)
}

func TestRequiresTokenKey(t *testing.T) {
	_, err := load(t, map[string]string{"KEYCLOAK_CLIENT_SECRET": "x"})
	require.Error(t, err)
}

func TestRequiresDirectoryCredentials(t *testing.T) {
	_, err := load(t, map[string]string{"JWT_SECRET": "s3cret"})
	require.Error(t, err)
}

func TestRedisEnabledWithAddress(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET":             "s3cret",
		"KEYCLOAK_CLIENT_SECRET": "x",
		"REDIS_ADDR":             "localhost:6379",
		"REDIS_GUARD_TTL":        "30s",
	})
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.GuardTTL)
	assert.False(t, RedisConfig{Addr: "  "}.Enabled())
}
