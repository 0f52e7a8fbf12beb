package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "clawusage"
	configFileName = "config.toml"
	dbFileName     = "usage.db"
)

// GetHome returns $CLAWUSAGE_HOME or <user config dir>/clawusage
func GetHome() string {
	if home := os.Getenv("CLAWUSAGE_HOME"); home != "" {
		return ExpandPath(home)
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "." + appName
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, appName)
}

// GetDBPath returns the default usage database path
func GetDBPath() string {
	return filepath.Join(GetHome(), dbFileName)
}

// GetSettingsPath returns the default config.toml path
func GetSettingsPath() string {
	return filepath.Join(GetHome(), configFileName)
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
