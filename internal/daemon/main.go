// Package daemon runs the appliance: it resolves the shared directory, loads
// the settings snapshot, serves HTTP and configures the access point.
package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/PirateLibrary/PirateLibrary/internal/apconfig"
	"github.com/PirateLibrary/PirateLibrary/internal/config"
	"github.com/PirateLibrary/PirateLibrary/internal/orchestrator"
	"github.com/PirateLibrary/PirateLibrary/internal/settings"
	"github.com/PirateLibrary/PirateLibrary/internal/shared"
	"github.com/PirateLibrary/PirateLibrary/internal/web"
	"github.com/PirateLibrary/PirateLibrary/internal/web/handler"
)

// ErrNilConfig is returned by New without configuration.
var ErrNilConfig = errors.New("config is nil")

// Options changes how the daemon starts.
type Options struct {
	ConfigDir    string // passed to the autostart unit
	SkipAP       bool   // serve files only, leave hostapd and dnsmasq alone
	FastShutdown bool   // do not wait ShutDownTime before stopping

	Probe  shared.MountProbe   // default: shared.PartitionProbe
	Runner orchestrator.Runner // default: orchestrator.ExecRunner
}

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	opts       Options
	root       string
	snapshot   settings.Settings
	webService *web.Service
	orch       *orchestrator.Orchestrator
}

// New prepares everything that has to succeed before serving: the shared
// directory and a readable settings record.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if opts.Probe == nil {
		opts.Probe = shared.PartitionProbe{}
	}

	if opts.Runner == nil {
		opts.Runner = orchestrator.ExecRunner{Sudo: cfg.AccessPoint.UseSudo}
	}

	root, err := shared.Resolve(ctx, opts.Probe, cfg.Storage.MountPoint, cfg.Storage.DefaultDir)
	if err != nil {
		return nil, err
	}

	store, err := settings.Open(cfg.Settings)
	if err != nil {
		return nil, errors.Wrap(err, "open settings")
	}

	// a corrupt record stops the daemon here
	snapshot, err := store.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load settings")
	}

	webService, err := web.New(cfg, &handler.Env{Root: root, Store: store})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("root", root).
		Str("ssid", snapshot.NetworkName).
		Bool("open", snapshot.IsOpen()).
		Msg("daemon prepared")

	return &Daemon{
		cfg:        cfg,
		opts:       opts,
		root:       root,
		snapshot:   snapshot,
		webService: webService,
		orch:       orchestrator.New(opts.Runner, cfg.AccessPoint),
	}, nil
}

// Root returns the shared directory.
func (d *Daemon) Root() string {
	return d.root
}

// Run serves until ctx is canceled or a listener fails. Access point and
// autostart failures are logged and do not stop the file server.
func (d *Daemon) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.webService.Start(d.webService.Addr())
	})

	g.Go(func() error {
		return d.webService.StartMetrics(d.webService.MetricsAddr())
	})

	g.Go(func() error {
		d.setup(gctx)

		return nil
	})

	// shutdown listener
	g.Go(func() error {
		<-gctx.Done()

		log.Info().Msg("shutdown request")
		d.webService.Shutdown(d.opts.FastShutdown)

		return nil
	})

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "server error")
	}

	return nil
}

func (d *Daemon) setup(ctx context.Context) {
	if !d.opts.SkipAP {
		rendered := apconfig.Render(d.snapshot, apconfig.FromConfig(d.cfg.AccessPoint))

		if err := d.orch.Apply(ctx, rendered); err != nil {
			log.Error().Err(err).Msg("access point setup failed, files are still served")
		}
	}

	if d.cfg.Service.Autostart {
		unit, err := orchestrator.UnitFromConfig(d.cfg.Service, d.cfg.Title, d.opts.ConfigDir)
		if err == nil {
			err = d.orch.Install(ctx, unit)
		}

		if err != nil {
			log.Error().Err(err).Msg("autostart install failed")
		}
	}
}
