// Package settings provides the network settings page.
package settings

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
	store "github.com/PirateLibrary/PirateLibrary/internal/settings"
	"github.com/PirateLibrary/PirateLibrary/internal/web/handler"
	"github.com/PirateLibrary/PirateLibrary/internal/web/navigation"
)

const (
	// Path is the path to the settings page.
	Path = "settings"

	// TemplateName is the form template.
	TemplateName = "settings"

	// SavedTemplateName is rendered after a successful save.
	SavedTemplateName = "settings_saved"

	fieldSSID     = "ssid"
	fieldPassword = "password"
)

var saves = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "piratelibrary_settings_saves_total",
	Help: "Number of settings records saved through the web form.",
})

// Form is the submitted settings form. Length and charset of the values
// are left to hostapd, which refuses to start with a bad network.
type Form struct {
	SSID     string `validate:"required,singleline"`
	Password string `validate:"singleline"`
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     store.Store
	validator *validator.Validate
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, env *handler.Env) error {
	if app == nil || cfg == nil || env == nil || env.Store == nil {
		return errors.New(handler.ErrNilFatalLogMsg)
	}

	s.cfg = cfg
	s.store = env.Store
	s.validator = NewValidator()

	// register routes
	app.Route("/"+Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// NewValidator returns a validator knowing the singleline tag.
func NewValidator() *validator.Validate {
	v := validator.New()

	// CR or LF would start a new line in the rendered daemon configuration
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})

	return v
}

// Get renders the form pre-filled from the store.
func (s *Service) Get(c *fiber.Ctx) error {
	current, err := s.store.Load()
	if err != nil {
		return pkgerrors.Wrap(err, "load settings")
	}

	return s.renderForm(c, fiber.StatusOK, current, nil)
}

// Post validates and persists the submitted form. The new values take
// effect after the next restart.
func (s *Service) Post(c *fiber.Ctx) error {
	args := c.Request().PostArgs()

	submitted := store.New(string(args.Peek(fieldSSID)), string(args.Peek(fieldPassword)))

	for _, key := range []string{fieldSSID, fieldPassword} {
		if len(args.PeekMulti(key)) > 1 {
			log.Warn().Str("field", key).Msg("settings form field repeated")

			return s.renderForm(c, fiber.StatusBadRequest, submitted,
				[]string{"Field '" + key + "' was given more than once"})
		}
	}

	form := Form{SSID: submitted.NetworkName, Password: submitted.Passphrase}
	if err := s.validator.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		errorMessages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		log.Warn().Err(err).Msg("validation failed for settings form")

		return s.renderForm(c, fiber.StatusBadRequest, submitted, errorMessages)
	}

	if err := s.store.Save(submitted); err != nil {
		return pkgerrors.Wrap(err, "save settings")
	}

	saves.Inc()

	log.Info().
		Str("ssid", submitted.NetworkName).
		Bool("open", submitted.IsOpen()).
		Msg("settings saved, reboot to apply")

	return c.Render(SavedTemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext("Network", navigation.SectionSettings),
		"Settings":   submitted,
	}, handler.BaseLayout)
}

func (s *Service) renderForm(c *fiber.Ctx, status int, current store.Settings, errs []string) error {
	return c.Status(status).Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext("Network", navigation.SectionSettings),
		"Settings":   current,
		"Error":      errs,
	}, handler.BaseLayout)
}
