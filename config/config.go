package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string]string{
	"zoominfo.url":      "ZOOMINFO_URL",
	"zoominfo.username": "ZOOMINFO_USERNAME",
	"zoominfo.password": "ZOOMINFO_PASSWORD",
}

// LoadOption adjusts how a configuration is validated
type LoadOption func(*loadOptions)

type loadOptions struct {
	skipCredentials bool
}

// SkipCredentialCheck accepts a configuration without a password or keyring
// setting. Only the connection settings are required.
func SkipCredentialCheck(o *loadOptions) {
	o.skipCredentials = true
}

// Load loads the configuration from file and environment. A .env file in the
// working directory is read first; variables already set take precedence.
// Without an explicit path a missing config file is not an error.
func Load(configPath string, opts ...LoadOption) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	// Populate the environment from .env, if present
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment variables override file values
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".ziclient"))
		}

		// Check /etc
		v.AddConfigPath("/etc/ziclient/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg, o); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// ZoomInfo defaults
	v.SetDefault("zoominfo.url", "https://api.zoominfo.com")
	v.SetDefault("zoominfo.timeout", "30s")
	v.SetDefault("zoominfo.request_interval", "1s")
	v.SetDefault("zoominfo.token_lifetime", "55m")
	v.SetDefault("zoominfo.use_keyring", false)

	// Search defaults
	v.SetDefault("search.max_results", 1000)
	v.SetDefault("search.fetch_all", true)
	v.SetDefault("search.records_per_page", 100)
	v.SetDefault("search.required_fields", "email")
	v.SetDefault("search.enrich_concurrency", 4)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config, o loadOptions) error {
	if cfg.ZoomInfo.URL == "" {
		return fmt.Errorf("zoominfo.url is required")
	}
	if cfg.ZoomInfo.Username == "" {
		return fmt.Errorf("zoominfo.username is required (or set ZOOMINFO_USERNAME)")
	}
	if cfg.ZoomInfo.Password == "" && !cfg.ZoomInfo.UseKeyring && !o.skipCredentials {
		return fmt.Errorf("zoominfo.password is required (or set ZOOMINFO_PASSWORD, or enable zoominfo.use_keyring)")
	}

	// Client settings
	if cfg.ZoomInfo.Timeout <= 0 {
		return fmt.Errorf("zoominfo.timeout must be positive")
	}
	if cfg.ZoomInfo.RequestInterval < 0 {
		return fmt.Errorf("zoominfo.request_interval must not be negative")
	}
	if cfg.ZoomInfo.TokenLifetime <= 0 {
		return fmt.Errorf("zoominfo.token_lifetime must be positive")
	}

	// Search settings
	if cfg.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive")
	}
	if cfg.Search.RecordsPerPage <= 0 {
		return fmt.Errorf("search.records_per_page must be positive")
	}
	if cfg.Search.EnrichConcurrency <= 0 {
		return fmt.Errorf("search.enrich_concurrency must be positive")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
