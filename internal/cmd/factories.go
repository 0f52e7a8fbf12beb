package cmd

import (
	"time"

	"github.com/renato0307/clawusage/internal/adapters/gateway"
	adapterstorage "github.com/renato0307/clawusage/internal/adapters/storage"
	"github.com/renato0307/clawusage/internal/config"
	"github.com/renato0307/clawusage/internal/logging"
	"github.com/renato0307/clawusage/internal/ports"
	"github.com/renato0307/clawusage/internal/services"
)

// ContainerOptions carries resolved global flags into the adapters
type ContainerOptions struct {
	Debug bool // Also traces SQL statements into the debug log
}

// Container holds the dependencies shared by commands.
// The usage store is opened on first use so fetch-only runs never touch the database.
type Container struct {
	OpenClaw     *config.OpenClawConfig
	OpenClawPath string
	Settings     *config.Settings

	newDialer func(gateway.Config) ports.GatewayDialer
	now       func() time.Time // nil uses the wall clock
	openStore func(dbPath string) (ports.UsageRepository, error)
	store     ports.UsageRepository
}

// NewContainer creates a new Container from loaded settings
func NewContainer(settings *config.Settings, opts ContainerOptions) (*Container, error) {
	if settings == nil {
		settings = &config.Settings{}
	}

	openclawPath := config.GetOpenClawConfigPath()
	openclaw, err := config.LoadOpenClawConfig(openclawPath)
	if err != nil {
		// The gateway's own file is only a fallback for address and auth mode
		logging.Logger.Warn("Ignoring unreadable gateway config", "path", openclawPath, "error", err)
		openclaw = nil
	}

	return &Container{
		OpenClaw:     openclaw,
		OpenClawPath: openclawPath,
		Settings:     settings,
		newDialer: func(cfg gateway.Config) ports.GatewayDialer {
			return gateway.NewClient(cfg)
		},
		openStore: func(dbPath string) (ports.UsageRepository, error) {
			return adapterstorage.NewSQLiteRepository(adapterstorage.Options{
				Path:       dbPath,
				TraceQuery: opts.Debug,
			})
		},
	}, nil
}

// Collector creates a CollectorService for the resolved gateway.
// store may be nil for fetch-only use.
func (c *Container) Collector(gw config.Gateway, store ports.UsageRepository) *services.CollectorService {
	dialer := c.newDialer(gateway.Config{
		ConnectTimeout: gw.ConnectTimeout,
		RequestTimeout: gw.RequestTimeout,
	})
	collector := services.NewCollectorService(dialer, store)
	if c.now != nil {
		collector = collector.WithClock(c.now)
	}
	return collector
}

// Store opens the usage store at dbPath, reusing it on later calls
func (c *Container) Store(dbPath string) (ports.UsageRepository, error) {
	if c.store != nil {
		return c.store, nil
	}

	store, err := c.openStore(dbPath)
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
