package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/renato0307/clawusage/internal/config"
	"github.com/renato0307/clawusage/internal/logging"
)

// ConfigCmd manages config.toml
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"init" help:"Write a config.toml with default values"`
	Show ConfigShowCmd `cmd:"show" help:"Show the resolved configuration" default:"1"`
}

// ConfigInitCmd writes the default configuration
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file"`
}

// Run executes the init command
func (c *ConfigInitCmd) Run(cli *CLI) error {
	path := cli.settingsPath()

	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	if err := config.SaveSettings(path, config.DefaultSettings()); err != nil {
		return err
	}

	logging.Logger.Info("Config file written", "path", path)
	fmt.Fprintf(cli.Stdout, "Wrote %s\n", path)
	fmt.Fprintf(cli.Stdout, "Set %s in your environment to authenticate; it is never stored in the file.\n", envToken)
	return nil
}

// ConfigShowCmd prints where every setting comes from
type ConfigShowCmd struct{}

// Run executes the show command
func (c *ConfigShowCmd) Run(cli *CLI) error {
	gw := config.ResolveGateway(cli.Container.Settings, cli.Container.OpenClaw)
	var usage UsageCmd
	usage.applySettings(cli.Container.Settings)

	secretVar := envToken
	if gw.AuthMode == "password" {
		secretVar = envPassword
	}
	secret := "not set"
	if os.Getenv(secretVar) != "" {
		secret = "set"
	}

	w := tabwriter.NewWriter(cli.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Home\t%s\n", config.GetHome())
	fmt.Fprintf(w, "Config file\t%s\t%s\n", cli.settingsPath(), existence(cli.settingsPath()))
	fmt.Fprintf(w, "Gateway config\t%s\t%s\n", cli.Container.OpenClawPath, existence(cli.Container.OpenClawPath))
	fmt.Fprintf(w, "Database\t%s\n", usage.dbPath())
	fmt.Fprintf(w, "Gateway URL\t%s\n", gw.URL)
	fmt.Fprintf(w, "Auth mode\t%s\n", gw.AuthMode)
	if gw.AuthMode != "none" {
		fmt.Fprintf(w, "%s\t%s\n", secretVar, secret)
	}
	fmt.Fprintf(w, "Connect timeout\t%s\n", gw.ConnectTimeout)
	fmt.Fprintf(w, "Request timeout\t%s\n", gw.RequestTimeout)
	fmt.Fprintf(w, "Default days\t%d\n", usage.days)
	return w.Flush()
}

func existence(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "(missing)"
	}
	return ""
}
