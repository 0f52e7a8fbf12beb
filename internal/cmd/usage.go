package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/renato0307/clawusage/internal/config"
	"github.com/renato0307/clawusage/internal/domain"
	"github.com/renato0307/clawusage/internal/logging"
	"github.com/renato0307/clawusage/internal/ports"
	"github.com/renato0307/clawusage/internal/services"
	"github.com/renato0307/clawusage/internal/ui"
)

// Environment variables holding the gateway secret. Secrets are never read from files.
const (
	envPassword = "OPENCLAW_PASSWORD"
	envToken    = "OPENCLAW_TOKEN"
)

// UsageCmd fetches usage from the gateway, or reports on the local store
type UsageCmd struct {
	Breakdown bool          `help:"Show input, output and cache tokens under each day" short:"b"`
	DB        string        `help:"Path to the usage database (default: <home>/usage.db)" name:"db" type:"path" env:"CLAWUSAGE_DB"`
	Days      *int          `help:"Number of days to fetch (default: collector.days from config.toml, else 7)" short:"n"`
	Gateway   string        `help:"Gateway WebSocket URL (default: from config files)" env:"OPENCLAW_GATEWAY_URL"`
	JSON      bool          `help:"Print machine-readable JSON" name:"json"`
	ListAll   bool          `help:"List every stored day, oldest first" xor:"action"`
	Pretty    bool          `help:"Indent JSON output (implies --json)"`
	Save      bool          `help:"Save fetched usage to the local database" xor:"action"`
	Status    bool          `help:"Show local database status" xor:"action"`
	Timeout   time.Duration `help:"Timeout for the usage request (e.g. 30s)"`

	days int `kong:"-"` // Resolved by applySettings
}

// Validate is called by kong after parsing
func (u *UsageCmd) Validate() error {
	if u.Days != nil && *u.Days <= 0 {
		return fmt.Errorf("--days must be a positive number, got %d", *u.Days)
	}
	if u.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	return nil
}

// Run executes the usage command
func (u *UsageCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	u.applySettings(cli.settings)
	if u.Pretty {
		u.JSON = true
	}

	switch {
	case u.Status:
		return u.runStatus(ctx, cli)
	case u.ListAll:
		return u.runListAll(ctx, cli)
	default:
		return u.runFetch(ctx, cli)
	}
}

// applySettings fills values not given on the command line from config.toml
func (u *UsageCmd) applySettings(settings *config.Settings) {
	if settings == nil {
		settings = &config.Settings{}
	}

	switch {
	case u.Days != nil:
		u.days = *u.Days
	case settings.Collector.Days > 0:
		u.days = settings.Collector.Days
	default:
		u.days = config.DefaultDays
	}

	if u.DB == "" && settings.Collector.DBPath != "" {
		u.DB = settings.Collector.DBPath
	}
}

func (u *UsageCmd) dbPath() string {
	if u.DB != "" {
		return config.ExpandPath(u.DB)
	}
	return config.GetDBPath()
}

// gateway resolves the gateway config with flag overrides on top
func (u *UsageCmd) gateway(cli *CLI) config.Gateway {
	gw := config.ResolveGateway(cli.Container.Settings, cli.Container.OpenClaw)
	if u.Gateway != "" {
		gw.URL = u.Gateway
	}
	if u.Timeout > 0 {
		gw.RequestTimeout = u.Timeout
	}
	return gw
}

// credentials reads the secret for the configured auth mode from the environment
func credentials(authMode string) ports.GatewayCredentials {
	mode := ports.AuthMode(authMode)
	switch mode {
	case ports.AuthModeNone:
		return ports.GatewayCredentials{Mode: mode}
	case ports.AuthModePassword:
		return ports.GatewayCredentials{Mode: mode, Secret: os.Getenv(envPassword)}
	default:
		return ports.GatewayCredentials{Mode: ports.AuthModeToken, Secret: os.Getenv(envToken)}
	}
}

func (u *UsageCmd) runFetch(ctx context.Context, cli *CLI) error {
	gw := u.gateway(cli)
	creds := credentials(gw.AuthMode)

	logging.Logger.Info("Fetching usage", "gateway", gw.URL, "days", u.days, "save", u.Save)

	collector := cli.Container.Collector(gw, nil)
	session, err := collector.Connect(ctx, gw.URL, creds)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logging.Logger.Debug("Failed to close gateway session", "error", err)
		}
	}()

	records, err := collector.FetchUsage(ctx, session, u.days)
	if err != nil {
		return err
	}

	summary := services.Summarize(records)
	if u.JSON {
		err = ui.SummaryJSON(cli.Stdout, summary, u.Pretty)
	} else {
		err = ui.NewPrinter(cli.Stdout).WithBreakdown(u.Breakdown).Summary(summary, u.days)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !u.Save {
		return nil
	}
	return u.persist(ctx, cli, gw, records)
}

// persist runs after the report has been printed, so a storage failure never hides the summary
func (u *UsageCmd) persist(ctx context.Context, cli *CLI, gw config.Gateway, records []domain.UsageRecord) error {
	dbPath := u.dbPath()
	store, err := cli.Container.Store(dbPath)
	if err != nil {
		return err
	}

	result, persistErr := cli.Container.Collector(gw, store).Persist(ctx, records)

	// Keep stdout clean for JSON consumers
	out := cli.Stdout
	if u.JSON {
		out = cli.Stderr
	}
	if err := ui.NewPrinter(out).Saved(result, dbPath); err != nil {
		logging.Logger.Warn("Failed to print save result", "error", err)
	}
	return persistErr
}

func (u *UsageCmd) runStatus(ctx context.Context, cli *CLI) error {
	dbPath := u.dbPath()
	store, err := cli.Container.Store(dbPath)
	if err != nil {
		return err
	}

	status, err := services.NewCollectorService(nil, store).Status(ctx)
	if err != nil {
		return err
	}

	if u.JSON {
		return ui.StatusJSON(cli.Stdout, status, dbPath, u.Pretty)
	}
	return ui.NewPrinter(cli.Stdout).Status(status, dbPath)
}

func (u *UsageCmd) runListAll(ctx context.Context, cli *CLI) error {
	store, err := cli.Container.Store(u.dbPath())
	if err != nil {
		return err
	}

	seq := services.NewCollectorService(nil, store).ListAll(ctx)

	var count int
	if u.JSON {
		count, err = ui.ListJSON(cli.Stdout, seq, u.Pretty)
	} else {
		count, err = ui.NewPrinter(cli.Stdout).WithBreakdown(u.Breakdown).List(seq)
	}
	if err != nil {
		if errors.Is(err, domain.ErrStorage) {
			return err
		}
		return fmt.Errorf("failed to write list: %w", err)
	}

	logging.Logger.Debug("Listed stored usage", "rows", count)
	return nil
}
