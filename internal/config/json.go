package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/elevatify/elevatify/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds.
type jsonConfig struct {
	DatabasePath  *string         `json:"database_path"`
	WatchInterval *timex.Duration `json:"watch_interval"`
	RetryAttempts *uint64         `json:"retry_attempts"`
}

// parseJSON overlays cfg with values loaded from the JSON file named by the
// ELEVATIFY_CONFIG environment variable. If the variable is unset, nothing
// is loaded. Read or unmarshal errors panic; the caller decides whether a
// broken config file is recoverable.
func parseJSON(cfg *Config) {
	path := os.Getenv("ELEVATIFY_CONFIG")
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.WatchInterval != nil {
		cfg.WatchInterval = time.Duration(jc.WatchInterval.Duration)
	}
	if jc.RetryAttempts != nil {
		cfg.RetryAttempts = *jc.RetryAttempts
	}
}
