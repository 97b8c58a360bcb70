package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/PirateLibrary/PirateLibrary/internal/fsutil"
	"github.com/PirateLibrary/PirateLibrary/internal/multipart"
)

// ErrNotFound is returned for names that are not a regular shared file.
var ErrNotFound = errors.New("file not found")

// StatusFor maps an error to the HTTP status code it should produce.
func StatusFor(err error) int {
	var fe *fiber.Error

	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, multipart.ErrBodyTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, multipart.ErrMissingBoundary),
		errors.Is(err, multipart.ErrMissingFilename),
		errors.Is(err, multipart.ErrMalformedPart),
		errors.Is(err, multipart.ErrNoParts),
		errors.Is(err, fsutil.ErrInvalidName):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler answers with a short text body. Internal errors are logged
// and their details are not sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)

	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")

		msg = fiber.ErrInternalServerError.Message
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Status(code).SendString(msg)
}
