package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/greenlens/backend/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Messaging MessagingConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Popup     PopupConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds the key-value store used for page snapshots
type StoreConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"` // 0 keeps snapshots until overwritten
}

// MessagingConfig holds the extension message channel configuration
type MessagingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	RedisURL string `mapstructure:"redis_url"` // defaults to store.redis_url
	Channel  string `mapstructure:"channel"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
	Burst int `mapstructure:"burst"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// PopupConfig holds popup rendering configuration
type PopupConfig struct {
	Alternatives int    `mapstructure:"alternatives"`
	DefaultURL   string `mapstructure:"default_url"`
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/greenlens/")

	// GREENLENS_SERVER_PORT -> server.port
	v.SetEnvPrefix("GREENLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if config.Messaging.RedisURL == "" {
		config.Messaging.RedisURL = config.Store.RedisURL
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env if present. Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can populate it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.ttl", "24h")

	// Messaging defaults
	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.redis_url", "")
	v.SetDefault("messaging.channel", "greenlens:messages")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Log defaults
	v.SetDefault("log.level", "info")

	// Popup defaults
	v.SetDefault("popup.alternatives", 2)
	v.SetDefault("popup.default_url", "https://amazon.com/product/example")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "memory" && config.Store.Type != "redis" {
		return fmt.Errorf("store type must be 'memory' or 'redis', got: %s", config.Store.Type)
	}

	if config.Store.Type == "redis" && config.Store.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when store type is 'redis'")
	}

	if config.Store.TTL < 0 {
		return fmt.Errorf("store TTL must not be negative, got: %s", config.Store.TTL)
	}

	if config.Messaging.Enabled && config.Messaging.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when messaging is enabled")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if _, err := logger.ParseLevel(config.Log.Level); err != nil {
		return err
	}

	if config.Popup.Alternatives < 0 {
		return fmt.Errorf("popup alternatives must not be negative, got: %d", config.Popup.Alternatives)
	}

	return nil
}
