package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/clawusage/internal/cmd"
	"github.com/renato0307/clawusage/internal/ui"
	"github.com/renato0307/clawusage/internal/version"
)

func main() {
	// Parse CLI arguments with Kong
	// Settings, logging and the container are set up in CLI.AfterApply()
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("clawusage"),
		kong.Description(version.Tagline),
		kong.Vars{
			"version": version.Info(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)

	// Execute the selected command
	err := ctx.Run()
	cli.Close()
	if err != nil {
		ui.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
