package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/clawusage/internal/config"
	"github.com/renato0307/clawusage/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	ConfigFile  string           `help:"Path to config.toml (default: <home>/config.toml)" name:"config" type:"path" env:"CLAWUSAGE_CONFIG"`
	Debug       bool             `help:"Enable debug logging to file" short:"d" env:"CLAWUSAGE_DEBUG"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"100"`
	Version     kong.VersionFlag `help:"Show version information"`

	Usage  UsageCmd  `cmd:"" help:"Fetch and print daily token usage (default)" default:"withargs"`
	Config ConfigCmd `cmd:"config" help:"Manage the clawusage configuration file"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	Stderr    io.Writer        `kong:"-"`
	Stdout    io.Writer        `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// settingsPath returns the config.toml in use
func (c *CLI) settingsPath() string {
	if c.ConfigFile != "" {
		return config.ExpandPath(c.ConfigFile)
	}
	return config.GetSettingsPath()
}

// AfterApply loads settings, initializes logging and wires dependencies
func (c *CLI) AfterApply() error {
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	settings, err := config.LoadSettings(c.settingsPath())
	if err != nil {
		return err
	}
	c.settings = settings

	// Precedence: CLI flags > env vars > config.toml > defaults.
	// Only apply if flag is at default value and env var is not set.
	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("CLAWUSAGE_MAX_LOG_FILES"); !hasEnv {
			if settings.MaxLogFiles != nil {
				c.MaxLogFiles = *settings.MaxLogFiles
			}
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("CLAWUSAGE_DEBUG"); !hasEnv {
			if settings.Debug != nil && *settings.Debug {
				c.Debug = true
			}
		}
	}

	if _, err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
	}); err != nil {
		return err
	}

	// Container is created after logging so adapters log to the configured file
	if c.Container == nil {
		container, err := NewContainer(settings, ContainerOptions{Debug: c.Debug})
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		c.Container = container
	}

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
