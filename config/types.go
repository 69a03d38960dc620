package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	ZoomInfo ZoomInfoConfig `mapstructure:"zoominfo"`
	Search   SearchConfig   `mapstructure:"search"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ZoomInfoConfig holds API connection details and client pacing
type ZoomInfoConfig struct {
	URL             string        `mapstructure:"url"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RequestInterval time.Duration `mapstructure:"request_interval"`
	TokenLifetime   time.Duration `mapstructure:"token_lifetime"`
	UseKeyring      bool          `mapstructure:"use_keyring"`
}

// SearchConfig controls paging and enrichment behaviour
type SearchConfig struct {
	MaxResults        int    `mapstructure:"max_results"`
	FetchAll          bool   `mapstructure:"fetch_all"`
	RecordsPerPage    int    `mapstructure:"records_per_page"`
	RequiredFields    string `mapstructure:"required_fields"`
	EnrichConcurrency int    `mapstructure:"enrich_concurrency"`
}

// FilterConfig contains the default expression and named presets
type FilterConfig struct {
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// MetricsConfig controls the Prometheus textfile export
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
