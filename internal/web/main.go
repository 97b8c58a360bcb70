// Package web assembles the fiber application: listing, downloads, uploads
// and the settings page, plus an optional metrics listener.
package web

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
	fiberlogger "github.com/PirateLibrary/PirateLibrary/internal/logger/adapter/fiber"
	"github.com/PirateLibrary/PirateLibrary/internal/web/handler"
	"github.com/PirateLibrary/PirateLibrary/internal/web/handler/library"
	"github.com/PirateLibrary/PirateLibrary/internal/web/handler/settings"
	"github.com/PirateLibrary/PirateLibrary/internal/web/templates"
)

const (
	// MetricsPath is served on the metrics listener only.
	MetricsPath = "/metrics"

	// CheckAlivePath answers 200 while the service accepts requests.
	CheckAlivePath = "/checkalive"
)

// ErrNilEnv is returned by New without configuration or dependencies.
var ErrNilEnv = errors.New("config and env can not be nil")

// Service represents the web service.
type Service struct {
	App     *fiber.App
	Metrics *fiber.App // nil when Webserver.MetricsPort is 0
	cfg     *config.Config
	alive   atomic.Bool
}

// Addr returns the listen address of the main app.
func (s *Service) Addr() string {
	return net.JoinHostPort(s.cfg.Webserver.Address, strconv.Itoa(s.cfg.Webserver.Port))
}

// MetricsAddr returns the listen address of the metrics app.
func (s *Service) MetricsAddr() string {
	return net.JoinHostPort(s.cfg.Webserver.Address, strconv.Itoa(s.cfg.Webserver.MetricsPort))
}

// Start listens on addr and blocks until the app is shut down.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	log.Info().Str("addr", addr).Msg("serving shared files")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// StartMetrics listens on addr with the metrics app, if enabled.
func (s *Service) StartMetrics(addr string) error {
	if s.Metrics == nil {
		return nil
	}

	log.Info().Str("addr", addr).Msg("serving metrics")

	if err := s.Metrics.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// Shutdown marks the service as not alive, waits ShutDownTime seconds so
// health checks can notice, and stops both apps.
func (s *Service) Shutdown(fast bool) {
	s.alive.Store(false)

	if !fast && s.cfg.Webserver.ShutDownTime > 0 {
		log.Info().Msgf("graceful shutdown: checkalive returns 503 for %d seconds", s.cfg.Webserver.ShutDownTime)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	if s.Metrics != nil {
		if err := s.Metrics.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, env *handler.Env) (*Service, error) {
	if cfg == nil || env == nil {
		return nil, ErrNilEnv
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:        8192,
			AppName:               cfg.Title,
			CaseSensitive:         true,
			Prefork:               false,
			Immutable:             true,
			UnescapePath:          true,
			BodyLimit:             cfg.Webserver.MaxUploadSize,
			ReadTimeout:           time.Duration(cfg.Webserver.ReadTimeout) * time.Second,
			WriteTimeout:          time.Duration(cfg.Webserver.WriteTimeout) * time.Second,
			IdleTimeout:           time.Duration(cfg.Webserver.IdleTimeout) * time.Second,
			DisableStartupMessage: !cfg.DevMode,
			ErrorHandler:          handler.ErrorHandler,
			Views:                 templates.NewEngine(cfg.DevMode),
		},
	)

	// the access log wraps recover so recovered panics are logged as 500
	app.Use(fiberlogger.New(fiberlogger.Config{Config: cfg.Log}))
	app.Use(recover.New())

	service := &Service{
		cfg: cfg,
		App: app,
	}

	// settings first, the library wildcard routes match every path
	if err := settings.Handler.Init(app, cfg, env); err != nil {
		return nil, err
	}

	if err := library.Handler.Init(app, cfg, env); err != nil {
		return nil, err
	}

	if cfg.Webserver.MetricsPort != 0 {
		service.Metrics = newMetricsApp(service)
	}

	return service, nil
}

func newMetricsApp(s *Service) *fiber.App {
	m := fiber.New(fiber.Config{
		AppName:               s.cfg.Title + " metrics",
		DisableStartupMessage: true,
	})

	m.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	m.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !s.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	return m
}
