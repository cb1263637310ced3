package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration for the DealDock backend.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig selects a driver plus its connection details. Path serves
// sqlite, DSN overrides everything, and the per-driver blocks cover the rest.
type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver"`
	Path     string       `mapstructure:"path"`
	DSN      string       `mapstructure:"dsn"`
	Postgres DBAuthConfig `mapstructure:"postgres"`
	MySQL    DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig holds host-based database connection parameters.
type DBAuthConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AuthConfig captures session token settings.
type AuthConfig struct {
	JWT JWTSettings `mapstructure:"jwt"`
}

// JWTSettings configures validation of provider session tokens.
type JWTSettings struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// StorageConfig locates the on-disk object store.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// MaintenanceConfig schedules the background expiry sweep.
type MaintenanceConfig struct {
	ExpirySchedule string `mapstructure:"expiry_schedule"`
}

// defaults doubles as the registry of known keys: viper only surfaces
// DEALDOCK_* env overrides for keys it has seen, so every configurable key
// needs an entry here even when the default is empty.
var defaults = map[string]any{
	"server.port":                 8000,
	"server.log_level":            "info",
	"database.driver":             "sqlite",
	"database.path":               "./data/dealdock.sqlite",
	"auth.jwt.secret":             "",
	"auth.jwt.issuer":             "dealdock",
	"auth.jwt.session_ttl":        "24h",
	"storage.path":                "./data/objects",
	"maintenance.expiry_schedule": "@hourly",
}

// LoadConfig reads config.yaml from ./config and any extra paths, layers
// DEALDOCK_* environment variables on top and decodes the result. A missing
// config file is fine; the defaults stand alone.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("DEALDOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &config, nil
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
