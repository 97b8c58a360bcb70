package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
	"github.com/PirateLibrary/PirateLibrary/internal/settings"
)

// Env carries the runtime dependencies of the handlers.
type Env struct {
	Root  string         // shared directory
	Store settings.Store // live settings record
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, env *Env) error
}
