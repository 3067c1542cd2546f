package config

import (
	"fmt"
	"sync"
)

var (
	// active is the configuration the running command works with.
	active   *Config
	activeMu sync.RWMutex
)

// GetConfig returns the active configuration, or nil if none was set.
func GetConfig() *Config {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}

// SetConfig makes cfg the active configuration.
func SetConfig(cfg *Config) {
	activeMu.Lock()
	defer activeMu.Unlock()
	active = cfg
}

// ReloadConfig re-reads path with environment overrides and makes the
// result active. On a load or validation error the active configuration
// is left in place.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	SetConfig(cfg)
	return nil
}

// MustGetConfig is GetConfig for callers that run after setup. It panics
// when no configuration is active.
func MustGetConfig() *Config {
	cfg := GetConfig()
	if cfg == nil {
		panic("configuration not set: call SetConfig first")
	}
	return cfg
}
