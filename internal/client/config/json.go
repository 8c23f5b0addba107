package config

import (
	"encoding/json"
	"os"
	"time"

	"perfectmatch/internal/flagx"
	"perfectmatch/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be given either as strings like "5m" or as
// integer nanoseconds. Parsed values are copied into the runtime Config.
type jsonConfig struct {
	ServerBaseURL     string         `json:"server_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	CacheTTL          timex.Duration `json:"cache_ttl"`
	DebounceWindow    timex.Duration `json:"debounce_window"`
	StorePath         string         `json:"store_path"`
	FallbackAdminUser string         `json:"fallback_admin_user"`
	FallbackAdminPass string         `json:"fallback_admin_pass"`
}

// parseJSON overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. When neither flag is present, nothing is loaded.
// Only fields present in the file override the current values. Panics on read
// or unmarshal errors.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.CacheTTL.Duration != 0 {
		cfg.CacheTTL = time.Duration(jc.CacheTTL.Duration)
	}
	if jc.DebounceWindow.Duration != 0 {
		cfg.DebounceWindow = time.Duration(jc.DebounceWindow.Duration)
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.FallbackAdminUser != "" {
		cfg.FallbackAdminUser = jc.FallbackAdminUser
	}
	if jc.FallbackAdminPass != "" {
		cfg.FallbackAdminPass = jc.FallbackAdminPass
	}
}
