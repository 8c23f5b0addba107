package config

import "time"

// Config holds runtime settings for the matrimonial profile CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API, including the /api prefix.
//   - RequestTimeout: per-request deadline for backend calls.
//   - CacheTTL: how long a locally cached profile counts as fresh.
//   - DebounceWindow: quiet period before an admin search query is applied.
//   - StorePath: path to the on-device SQLite database file.
//   - FallbackAdminUser / FallbackAdminPass: development credentials accepted
//     locally when the backend login endpoint is unreachable. An empty
//     password disables the fallback.
type Config struct {
	ServerBaseURL     string
	RequestTimeout    time.Duration
	CacheTTL          time.Duration
	DebounceWindow    time.Duration
	StorePath         string
	FallbackAdminUser string
	FallbackAdminPass string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 30 * time.Second
	c.CacheTTL = 5 * time.Minute
	c.DebounceWindow = 300 * time.Millisecond
	c.StorePath = "perfectmatch.db"
	c.FallbackAdminUser = "123"
	c.FallbackAdminPass = "345"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
