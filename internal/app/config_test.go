package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "dealdock", cfg.Auth.JWT.Issuer)
	require.Equal(t, 24*time.Hour, cfg.Auth.JWT.SessionTTL)
	require.Equal(t, "./data/objects", cfg.Storage.Path)
	require.Equal(t, "@hourly", cfg.Maintenance.ExpirySchedule)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	contents := []byte(`
server:
  port: 9100
  log_level: debug
auth:
  jwt:
    secret: file-secret
    session_ttl: 2h
maintenance:
  expiry_schedule: "@every 10m"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), contents, 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "file-secret", cfg.Auth.JWT.Secret)
	require.Equal(t, 2*time.Hour, cfg.Auth.JWT.SessionTTL)
	require.Equal(t, "@every 10m", cfg.Maintenance.ExpirySchedule)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DEALDOCK_SERVER_PORT", "9200")
	t.Setenv("DEALDOCK_AUTH_JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 9200, cfg.Server.Port)
	require.Equal(t, "env-secret", cfg.Auth.JWT.Secret)
}

func TestJWTServiceConfigConversion(t *testing.T) {
	auth := AuthConfig{JWT: JWTSettings{Secret: "  s3cret  ", Issuer: " dealdock ", SessionTTL: time.Hour}}
	cfg := auth.JWTServiceConfig()
	require.Equal(t, "s3cret", cfg.Secret)
	require.Equal(t, "dealdock", cfg.Issuer)
	require.Equal(t, time.Hour, cfg.SessionTTL)
}
