// Package config loads runtime settings for the ParishPortal CLI from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence (later sources win).
package config

import "time"

// Config holds runtime settings for the ParishPortal CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api
//     prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - StateDBPath: path of the local sqlite database holding durable
//     client state (the auth token).
//   - OnlineCheckInterval: how often the client probes backend liveness.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	StateDBPath         string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 30 * time.Second
	c.StateDBPath = "portal.db"
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
