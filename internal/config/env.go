package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays cfg with values from the environment. Unparseable
// values are ignored so that a bad variable cannot brick every context
// sharing the store.
func parseEnv(cfg *Config) {
	if v := os.Getenv("ELEVATIFY_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("ELEVATIFY_WATCH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WatchInterval = d
		}
	}
	if v := os.Getenv("ELEVATIFY_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.RetryAttempts = n
		}
	}
}
