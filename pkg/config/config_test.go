package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  name: shop
  port: 8080
mysql:
  host: db
  port: 3307
  username: shop
  password: secret
  database: verkkokauppa
auth:
  jwt_secret: s3cret
redis:
  addr: cache:6379
  profile_ttl: 5m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.Server.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ProfileTTL)
	assert.Equal(t, 20, cfg.MySQL.MaxOpenConns)
	assert.Equal(t, "shop:secret@tcp(db:3307)/verkkokauppa?charset=utf8mb4&parseTime=True&loc=UTC", cfg.MySQL.DSN())
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: from-file
`)
	t.Setenv("STOREFRONT_AUTH_JWT_SECRET", "from-env")
	t.Setenv("STOREFRONT_SERVER_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("STOREFRONT_AUTH_JWT_SECRET", "env-only")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "env-only", cfg.Auth.JWTSecret)
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 3001\n")

	_, err := Load(path)
	assert.EqualError(t, err, "auth.jwt_secret must be set")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLogConfigBuild(t *testing.T) {
	lc := LogConfig{Level: "debug", Encoding: "console", OutputPaths: []string{"stderr"}}
	logger, err := lc.Build()
	require.NoError(t, err)
	assert.NotNil(t, logger)

	lc.Level = "loud"
	_, err = lc.Build()
	assert.Error(t, err)
}
