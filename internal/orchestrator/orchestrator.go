// Package orchestrator turns rendered access point configuration into a
// running access point and registers the autostart unit with systemd.
package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/PirateLibrary/PirateLibrary/internal/apconfig"
	"github.com/PirateLibrary/PirateLibrary/internal/config"
	"github.com/PirateLibrary/PirateLibrary/internal/fsutil"
)

const (
	hostapdUnit = "hostapd"
	dnsmasqUnit = "dnsmasq"
)

// Orchestrator applies configuration through a Runner.
type Orchestrator struct {
	runner Runner
	ap     config.AccessPoint
}

// New returns an Orchestrator for the [AccessPoint] section ap.
func New(runner Runner, ap config.AccessPoint) *Orchestrator {
	return &Orchestrator{runner: runner, ap: ap}
}

// Apply writes both files, assigns the gateway address and restarts
// hostapd and dnsmasq. Every step runs once; a daemon whose file could not
// be written is not restarted. All failures are returned joined.
func (o *Orchestrator) Apply(ctx context.Context, r apconfig.Rendered) error {
	var errs []error

	apErr := writeConfig(o.ap.HostapdConf, r.AP)
	dhcpErr := writeConfig(o.ap.DnsmasqConf, r.DHCP)
	errs = append(errs, apErr, dhcpErr)

	addr := o.ap.Gateway + "/" + strconv.Itoa(o.ap.PrefixLength)
	errs = append(errs, o.runner.Run(ctx, "ip", "addr", "replace", addr, "dev", o.ap.Interface))

	if apErr == nil {
		errs = append(errs, o.restart(ctx, hostapdUnit))
	}

	if dhcpErr == nil {
		errs = append(errs, o.restart(ctx, dnsmasqUnit))
	}

	err := errors.Join(errs...)
	if err == nil {
		log.Info().Str("interface", o.ap.Interface).Str("gateway", addr).Msg("access point configured")
	}

	return err
}

// Install writes the systemd unit and enables it.
func (o *Orchestrator) Install(ctx context.Context, u UnitOptions) error {
	unit, err := RenderUnit(u)
	if err != nil {
		return err
	}

	if err = writeConfig(u.Path, unit); err != nil {
		return err
	}

	if err = o.runner.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return err
	}

	if err = o.runner.Run(ctx, "systemctl", "enable", u.Name); err != nil {
		return err
	}

	log.Info().Str("unit", u.Name).Str("path", u.Path).Msg("autostart installed")

	return nil
}

func (o *Orchestrator) restart(ctx context.Context, unit string) error {
	return o.runner.Run(ctx, "systemctl", "restart", unit)
}

func writeConfig(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pkgerrors.Wrapf(err, "create directory for %s", path)
	}

	if _, err := fsutil.WriteFile(path, strings.NewReader(content), 0o644); err != nil {
		return pkgerrors.Wrapf(err, "write %s", path)
	}

	return nil
}
