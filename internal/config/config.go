// Package config loads the wadm CLI configuration from a YAML file, a .env
// file and WADM_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Sternrassler/wadm-client/pkg/client"
	"github.com/Sternrassler/wadm-client/pkg/logging"
)

// EnvPrefix prefixes every environment variable, e.g. WADM_USER_ID.
const EnvPrefix = "WADM"

// Config represents the complete configuration structure.
type Config struct {
	UserID      int           `mapstructure:"user_id"`
	AccessToken string        `mapstructure:"access_token"`
	Host        string        `mapstructure:"host"`
	PageSize    int           `mapstructure:"page_size"`
	Debug       bool          `mapstructure:"debug"`
	UserAgent   string        `mapstructure:"user_agent"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxPages    int           `mapstructure:"max_pages"`

	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the gateway settings.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Load reads configuration. An explicit configPath must exist; without one
// the standard locations are searched and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wadm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "wadm"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ClientConfig converts the loaded configuration into a client.Config.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		UserID:      c.UserID,
		AccessToken: c.AccessToken,
		Host:        c.Host,
		PageSize:    c.PageSize,
		Debug:       c.Debug,
		UserAgent:   c.UserAgent,
		Timeout:     c.Timeout,
	}
}

// setDefaults sets default configuration values. Every key needs a default
// so that AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("user_id", 0)
	v.SetDefault("access_token", "")
	v.SetDefault("host", client.DefaultHost)
	v.SetDefault("page_size", client.DefaultPageSize)
	v.SetDefault("debug", false)
	v.SetDefault("user_agent", client.DefaultUserAgent)
	v.SetDefault("timeout", client.DefaultTimeout)
	v.SetDefault("max_pages", 1000)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 2*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid.
func validate(cfg *Config) error {
	if cfg.UserID <= 0 {
		return fmt.Errorf("user_id is required")
	}

	if cfg.AccessToken == "" {
		return fmt.Errorf("access_token is required")
	}

	if cfg.PageSize < client.MinPageSize || cfg.PageSize > client.MaxPageSize {
		return fmt.Errorf("page_size must be between %d and %d (got %d)", client.MinPageSize, client.MaxPageSize, cfg.PageSize)
	}

	if cfg.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive (got %d)", cfg.MaxPages)
	}

	if !logging.ValidLevel(cfg.Logging.Level) {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
