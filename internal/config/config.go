// Package config handles configuration for the collaboration-state core,
// including defaults, a JSON overlay, and environment overrides.
package config

import "time"

// Config holds runtime settings for the shared entity store.
//
// Fields:
//   - DatabasePath: SQLite path (or DSN) of the shared store. Every context
//     on the machine must point at the same file to share state.
//   - WatchInterval: how often a store instance polls for commits made by
//     other contexts.
//   - RetryAttempts: how many times a read-modify-write is retried after a
//     version conflict before the error is surfaced.
type Config struct {
	DatabasePath  string
	WatchInterval time.Duration
	RetryAttempts uint64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "elevatify.db"
	c.WatchInterval = 500 * time.Millisecond
	c.RetryAttempts = 5
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if ELEVATIFY_CONFIG names a file) and from the environment.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	return cfg
}
