package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied when neither flags, environment nor config files set a value
const (
	DefaultAuthMode       = "token"
	DefaultConnectTimeout = 10 * time.Second
	DefaultDays           = 7
	DefaultGatewayURL     = "ws://127.0.0.1:18789"
	DefaultRequestTimeout = 30 * time.Second
)

// Duration is a time.Duration written as a string ("30s") in TOML
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Settings represents the structure of <home>/config.toml
type Settings struct {
	Collector   CollectorSettings `toml:"collector"`
	Debug       *bool             `toml:"debug,omitempty"`
	Gateway     GatewaySettings   `toml:"gateway"`
	MaxLogFiles *int              `toml:"max_log_files,omitempty"`
}

// GatewaySettings locates and authenticates against the gateway.
// The secret itself is never stored here.
type GatewaySettings struct {
	AuthMode       string    `toml:"auth_mode,omitempty"`
	ConnectTimeout *Duration `toml:"connect_timeout,omitempty"`
	RequestTimeout *Duration `toml:"request_timeout,omitempty"`
	URL            string    `toml:"url,omitempty"`
}

// CollectorSettings holds defaults for the fetch and save commands
type CollectorSettings struct {
	DBPath string `toml:"db_path,omitempty"`
	Days   int    `toml:"days,omitempty"`
}

// DefaultSettings returns the settings written by `config init`.
// URL and auth mode stay unset so the gateway's openclaw.json keeps supplying them.
func DefaultSettings() *Settings {
	return &Settings{
		Collector: CollectorSettings{Days: DefaultDays},
		Gateway: GatewaySettings{
			ConnectTimeout: &Duration{DefaultConnectTimeout},
			RequestTimeout: &Duration{DefaultRequestTimeout},
		},
	}
}

// LoadSettings reads config.toml at path.
// A missing file is not an error and yields empty settings.
func LoadSettings(path string) (*Settings, error) {
	var settings Settings
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	if settings.Collector.DBPath != "" {
		settings.Collector.DBPath = ExpandPath(settings.Collector.DBPath)
	}
	if settings.Gateway.AuthMode != "" {
		if err := ValidateAuthMode(settings.Gateway.AuthMode); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", path, err)
		}
	}

	return &settings, nil
}

// SaveSettings writes settings to path, creating the parent directory
func SaveSettings(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(settings); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ValidateAuthMode checks that mode is one of token, password or none
func ValidateAuthMode(mode string) error {
	switch mode {
	case "token", "password", "none":
		return nil
	}
	return fmt.Errorf("unknown auth mode %q (use token, password or none)", mode)
}
