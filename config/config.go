// Package config handles loading and validation of application configuration
// from environment variables and an optional YAML file.
package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/aurumascend/raisesignal-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	// SiteBaseURL is the public site URL used in links inside outgoing emails.
	SiteBaseURL string `mapstructure:"SITE_BASE_URL" yaml:"site_base_url"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely (safe default).
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
}

// EmailConfig holds configuration for sending submission emails.
type EmailConfig struct {
	FromAddress string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName    string `mapstructure:"FROM_NAME" yaml:"from_name"`
	// OpsAddress receives the internal notification for every submission.
	OpsAddress   string `mapstructure:"OPS_ADDRESS" yaml:"ops_address"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// RedisConfig holds Redis connection details for the rate limiter.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// RateLimitConfig holds configuration for throttling the public form endpoints.
type RateLimitConfig struct {
	// Maximum submissions per window from a single client IP
	SubmissionsPerWindow int `mapstructure:"SUBMISSIONS_PER_WINDOW" yaml:"submissions_per_window"`
	// Window duration in seconds for rate limiting
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	Email     EmailConfig     `mapstructure:"EMAIL" yaml:"email"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// optionally merging a YAML file named by CONFIG_FILE first, then validates
// the result. Missing required email settings abort startup.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{}) // Empty = trust no one (safe default)
	v.SetDefault("SERVER.SITE_BASE_URL", "https://raisesignal.com")
	v.SetDefault("EMAIL.FROM_NAME", "Aurum Ascend Capital")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("RATE_LIMIT.SUBMISSIONS_PER_WINDOW", 5)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.SITE_BASE_URL", "SITE_BASE_URL"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		// Email config
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.OPS_ADDRESS", "EMAIL_OPS_ADDRESS"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		// Redis config
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Rate limit config
		{"RATE_LIMIT.SUBMISSIONS_PER_WINDOW", "RATE_LIMIT_SUBMISSIONS_PER_WINDOW"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	// Optional file-based configuration for local development.
	if configFile := v.GetString("CONFIG_FILE"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"allowed_origins", v.GetString("SERVER.ALLOWED_ORIGINS"),
		"site_base_url", v.GetString("SERVER.SITE_BASE_URL"),
		"email_from", v.GetString("EMAIL.FROM_ADDRESS"),
		"resend_api_key", logger.MaskSensitiveString(v.GetString("EMAIL.RESEND_API_KEY"), 3, 2),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	// Validate Server Config
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Server.SiteBaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.Server.SiteBaseURL); err != nil {
			return fmt.Errorf("invalid site base URL '%s': %w", cfg.Server.SiteBaseURL, err)
		}
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	// Validate Email Config
	if cfg.Email.FromAddress == "" {
		return fmt.Errorf("email from address is required")
	}
	if _, err := mail.ParseAddress(cfg.Email.FromAddress); err != nil {
		return fmt.Errorf("invalid email from address '%s': %w", cfg.Email.FromAddress, err)
	}
	if cfg.Email.OpsAddress == "" {
		return fmt.Errorf("email ops address is required")
	}
	if _, err := mail.ParseAddress(cfg.Email.OpsAddress); err != nil {
		return fmt.Errorf("invalid email ops address '%s': %w", cfg.Email.OpsAddress, err)
	}
	if cfg.Email.ResendAPIKey == "" {
		return fmt.Errorf("resend API key is required")
	}

	// Validate Redis Config
	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}
	if cfg.Redis.Password == "" && cfg.Redis.UseTLS {
		log.Warn("Redis password is not set, but TLS is enabled. Ensure this is correct for your Redis provider.")
	}

	// Validate RateLimit config
	if cfg.RateLimit.SubmissionsPerWindow <= 0 {
		return fmt.Errorf("rate limit submissions per window must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
