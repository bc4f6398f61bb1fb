// Package config provides configuration management for GNoccur.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use GNOCCUR_ prefix with underscores for nesting:
//
//	GNOCCUR_API_BASE_URL=https://api.gbif.org/v1
//	GNOCCUR_DOWNLOAD_USER=myaccount
//	GNOCCUR_LOG_LEVEL=info
//	GNOCCUR_JOBS_NUMBER=8
package config

import (
	"runtime"
	"time"
)

// Config represents the complete GNoccur configuration.
type Config struct {
	// API contains settings for the remote occurrence web service.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Download contains credentials for bulk download submissions.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for partitioned
	// multi-taxon searches. Default value is set according to the number
	// of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// APIConfig contains settings for the remote web service.
type APIConfig struct {
	// BaseURL is the root of the occurrence service REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Timeout bounds every HTTP request, including archive downloads.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// CacheTTL sets how long taxonomy responses are kept in the
	// in-memory response cache. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`

	// UserAgent is sent with every request so the service can attribute
	// traffic to this client.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// DownloadConfig contains credentials used to authenticate bulk download
// submissions. They are read at submission time only and are never logged.
type DownloadConfig struct {
	// User is the account name registered with the occurrence service.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the account secret.
	Password string `mapstructure:"password" yaml:"password"`

	// Email receives notifications when a download job finishes.
	Email string `mapstructure:"email" yaml:"email"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		API: APIConfig{
			BaseURL:   "https://api.gbif.org/v1",
			Timeout:   30 * time.Second,
			CacheTTL:  10 * time.Minute,
			UserAgent: "gnoccur/" + Version,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
