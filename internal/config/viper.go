// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "CREDIT_REPORT"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Upload    UploadConfig    `mapstructure:"upload" yaml:"upload"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Import    ImportConfig    `mapstructure:"import" yaml:"import"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// UploadConfig bounds report uploads.
type UploadConfig struct {
	MaxBytes int64  `mapstructure:"max_bytes" yaml:"max_bytes"`
	Field    string `mapstructure:"field" yaml:"field"`
}

// RateLimitConfig configures per-client request budgets.
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled" yaml:"enabled"`
	RequestsPerWindow int           `mapstructure:"requests_per_window" yaml:"requests_per_window"`
	Window            time.Duration `mapstructure:"window" yaml:"window"`
	UploadsPerWindow  int           `mapstructure:"uploads_per_window" yaml:"uploads_per_window"`
	UploadWindow      time.Duration `mapstructure:"upload_window" yaml:"upload_window"`
}

// StoreConfig selects the report repository.
type StoreConfig struct {
	Driver     string `mapstructure:"driver" yaml:"driver"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// ImportConfig configures bulk imports.
type ImportConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// ListenAddress returns host:port for the HTTP server.
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// InitializeConfig loads configuration from defaults, the first config.yaml
// found in $HOME/.credit-report, ./.credit-report or the working directory,
// and the environment.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load is InitializeConfig with an explicit config file. An empty path
// searches the default locations; a missing default file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.credit-report")
		v.AddConfigPath(".credit-report")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variables used by container platforms and the web frontend
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT: %w", err)
	}
	if err := v.BindEnv("server.allowed_origins", EnvPrefix+"_SERVER_ALLOWED_ORIGINS", "FRONTEND_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind FRONTEND_URL: %w", err)
	}

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("upload.field", "xmlFile")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_window", 100)
	v.SetDefault("rate_limit.window", 15*time.Minute)
	v.SetDefault("rate_limit.uploads_per_window", 10)
	v.SetDefault("rate_limit.upload_window", time.Hour)

	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.sqlite_path", "credit-reports.db")

	v.SetDefault("import.workers", runtime.NumCPU())
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	if config.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive, got: %d", config.Upload.MaxBytes)
	}
	if config.Upload.Field == "" {
		return fmt.Errorf("upload.field must not be empty")
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.RequestsPerWindow < 1 || config.RateLimit.UploadsPerWindow < 1 {
			return fmt.Errorf("rate_limit request budgets must be at least 1")
		}
		if config.RateLimit.Window <= 0 || config.RateLimit.UploadWindow <= 0 {
			return fmt.Errorf("rate_limit windows must be positive")
		}
	}

	switch config.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if config.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path required when store.driver is %s", DriverSQLite)
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be '%s' or '%s')", config.Store.Driver, DriverMemory, DriverSQLite)
	}

	if config.Import.Workers < 1 {
		return fmt.Errorf("import.workers must be at least 1, got: %d", config.Import.Workers)
	}

	return nil
}
