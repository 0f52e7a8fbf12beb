package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// OpenClawConfig is the subset of the gateway's own openclaw.json the collector understands
type OpenClawConfig struct {
	Gateway struct {
		Auth struct {
			Mode string `json:"mode"`
		} `json:"auth"`
		Port int `json:"port"`
		TLS  struct {
			Enabled bool `json:"enabled"`
		} `json:"tls"`
	} `json:"gateway"`
}

// GetOpenClawConfigPath returns $OPENCLAW_CONFIG_PATH, $OPENCLAW_STATE_DIR/openclaw.json
// or ~/.openclaw/openclaw.json
func GetOpenClawConfigPath() string {
	if path := os.Getenv("OPENCLAW_CONFIG_PATH"); path != "" {
		return ExpandPath(path)
	}
	if dir := os.Getenv("OPENCLAW_STATE_DIR"); dir != "" {
		return filepath.Join(ExpandPath(dir), "openclaw.json")
	}
	return ExpandPath("~/.openclaw/openclaw.json")
}

// LoadOpenClawConfig reads the gateway configuration file.
// Returns nil without error when the file does not exist.
func LoadOpenClawConfig(path string) (*OpenClawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read gateway config: %w", err)
	}

	var cfg OpenClawConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid gateway config %s: %w", path, err)
	}
	return &cfg, nil
}

// URL returns the local gateway address implied by the port and TLS settings,
// or an empty string when no port is configured
func (c *OpenClawConfig) URL() string {
	if c == nil || c.Gateway.Port == 0 {
		return ""
	}
	scheme := "ws"
	if c.Gateway.TLS.Enabled {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://127.0.0.1:%d", scheme, c.Gateway.Port)
}

// AuthMode returns the configured auth mode, or an empty string
func (c *OpenClawConfig) AuthMode() string {
	if c == nil {
		return ""
	}
	return c.Gateway.Auth.Mode
}
