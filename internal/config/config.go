package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendLocal = "local"
	BackendHTTP  = "http"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Backend  BackendConfig
	Server   ServerConfig
	Log      LogConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// BackendConfig selects where the console gets its data.
type BackendConfig struct {
	Mode     string
	Timeout  time.Duration
	BaseURL  string `mapstructure:"base_url"`
	TokenEnv string `mapstructure:"token_env"`
}

// ServerConfig holds settings for `tenantadmin serve`.
type ServerConfig struct {
	Addr         string
	RegisterRate int `mapstructure:"register_rate"`
}

// LogConfig holds logger settings. An empty Path logs to stderr.
type LogConfig struct {
	Level  string
	Format string
	Path   string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string
}

// Location resolves the configured timezone.
func (u UIConfig) Location() (*time.Location, error) {
	if u.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(u.Timezone)
}

// Token returns the bearer token from the configured env var, if any.
func (b BackendConfig) Token() string {
	if b.TokenEnv == "" {
		return ""
	}
	return os.Getenv(b.TokenEnv)
}

// Load reads configuration from file and env. Env var overrides use prefix TENANTADMIN_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "tenantadmin")
	v.SetDefault("database.path", filepath.Join(dataDir, "tenantadmin.db"))
	v.SetDefault("backend.mode", BackendLocal)
	v.SetDefault("backend.base_url", "http://127.0.0.1:8088")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.token_env", "TENANTADMIN_TOKEN")
	v.SetDefault("server.addr", "127.0.0.1:8088")
	v.SetDefault("server.register_rate", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.path", filepath.Join(dataDir, "tenantadmin.log"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.timezone", "UTC")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TENANTADMIN_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tenantadmin"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TENANTADMIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine, a broken or explicitly named one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && (cfgPath != "" || !os.IsNotExist(err)) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings that would only fail later at runtime.
func (c Config) Validate() error {
	switch c.Backend.Mode {
	case BackendLocal:
	case BackendHTTP:
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("config: backend.base_url is required in http mode")
		}
	default:
		return fmt.Errorf("config: unknown backend.mode %q", c.Backend.Mode)
	}
	if _, err := c.UI.Location(); err != nil {
		return fmt.Errorf("config: ui.timezone: %w", err)
	}
	if c.Server.RegisterRate < 0 {
		return fmt.Errorf("config: server.register_rate must not be negative")
	}
	return nil
}
