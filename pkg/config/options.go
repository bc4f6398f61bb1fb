package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptAPIBaseURL sets the root URL of the occurrence service REST API.
func OptAPIBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidString("API Base URL", s) {
			c.API.BaseURL = s
		}
	}
}

// OptAPITimeout sets the per-request HTTP timeout.
func OptAPITimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("API Timeout", d) {
			c.API.Timeout = d
		}
	}
}

// OptAPICacheTTL sets the lifetime of cached taxonomy responses.
// Zero is accepted and disables the response cache.
func OptAPICacheTTL(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.API.CacheTTL = d
		}
	}
}

// OptAPIUserAgent sets the User-Agent header sent with every request.
func OptAPIUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API User Agent", s) {
			c.API.UserAgent = s
		}
	}
}

// OptDownloadUser sets the account name for bulk download submissions.
func OptDownloadUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Download User", s) {
			c.Download.User = s
		}
	}
}

// OptDownloadPassword sets the account secret for bulk download
// submissions. The value is never logged.
func OptDownloadPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Download Password", s) {
			c.Download.Password = s
		}
	}
}

// OptDownloadEmail sets the notification address for download jobs.
func OptDownloadEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Download Email", s) {
			c.Download.Email = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for partitioned
// multi-taxon searches. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
