package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Booking BookingConfig `mapstructure:"booking"`
	OTel    OTelConfig    `mapstructure:"otel"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Environment string `mapstructure:"environment"` // development, production
	LogLevel    string `mapstructure:"log_level"`
	Version     string `mapstructure:"version"`
}

// APIConfig holds backend API settings
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AuthConfig holds session persistence settings
type AuthConfig struct {
	TokenPath string `mapstructure:"token_path"`
}

// BookingConfig holds booking form settings
type BookingConfig struct {
	MinDuration   time.Duration `mapstructure:"min_duration"`
	DefaultWindow time.Duration `mapstructure:"default_window"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ServiceName   string `mapstructure:"service_name"`
	CollectorAddr string `mapstructure:"collector_addr"`
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Load loads configuration from the config file (if present) and
// environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "seatctl"))
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("SEATCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// No config file is fine, env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithPath loads configuration from a specific config file
func LoadWithPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	v.AutomaticEnv()
	v.SetEnvPrefix("SEATCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("api.base_url", "http://localhost:8081/api")
	v.SetDefault("api.timeout", "30s")

	v.SetDefault("auth.token_path", defaultTokenPath())

	v.SetDefault("booking.min_duration", "1h")
	v.SetDefault("booking.default_window", "2h")

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.service_name", "seatctl")
	v.SetDefault("otel.collector_addr", "localhost:4317")
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".seatctl-token"
	}
	return filepath.Join(dir, "seatctl", "token")
}

// Validate checks required configuration values
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Auth.TokenPath == "" {
		return fmt.Errorf("auth.token_path is required")
	}
	if c.Booking.MinDuration <= 0 {
		return fmt.Errorf("booking.min_duration must be positive")
	}
	if c.Booking.DefaultWindow < c.Booking.MinDuration {
		return fmt.Errorf("booking.default_window must be at least booking.min_duration")
	}
	return nil
}
