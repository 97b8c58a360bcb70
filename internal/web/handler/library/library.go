// Package library serves the shared directory: the listing page with the
// upload form, file downloads and multipart uploads.
package library

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/PirateLibrary/PirateLibrary/internal/config"
	"github.com/PirateLibrary/PirateLibrary/internal/fsutil"
	"github.com/PirateLibrary/PirateLibrary/internal/multipart"
	store "github.com/PirateLibrary/PirateLibrary/internal/settings"
	"github.com/PirateLibrary/PirateLibrary/internal/shared"
	"github.com/PirateLibrary/PirateLibrary/internal/web/handler"
	"github.com/PirateLibrary/PirateLibrary/internal/web/navigation"
)

const (
	// TemplateName is the name of the listing template.
	TemplateName = "library"

	filePerm = 0o644
)

// Service is the library handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	root    string
	store   store.Store
	decoder multipart.Decoder
}

// Handler is the library handler.
var Handler = Service{}

// Init registers the listing, download and upload routes. It must run after
// every other handler since its wildcard routes match any path.
func (s *Service) Init(app *fiber.App, cfg *config.Config, env *handler.Env) error {
	if app == nil || cfg == nil || env == nil || env.Store == nil {
		return errors.New(handler.ErrNilFatalLogMsg)
	}

	s.cfg = cfg
	s.root = env.Root
	s.store = env.Store
	s.decoder = multipart.Decoder{MaxBodySize: cfg.Webserver.MaxUploadSize}

	app.Get(handler.RootPath, s.List)
	app.Get(handler.WildcardPath, s.Download)
	app.Post(handler.WildcardPath, s.Upload)

	return nil
}

// List renders the shared directory and the upload form, greeting with the
// stored network name.
func (s *Service) List(c *fiber.Ctx) error {
	entries, err := shared.List(s.root)
	if err != nil {
		return pkgerrors.Wrap(err, "list shared directory")
	}

	current, err := s.store.Load()
	if err != nil {
		return pkgerrors.Wrap(err, "load settings")
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":       s.cfg.Title,
		"Navigation":  navigation.NewContext("Files", navigation.SectionLibrary),
		"NetworkName": current.NetworkName,
		"Entries":     entries,
	}, handler.BaseLayout)
}

// Download streams one regular file of the shared directory.
func (s *Service) Download(c *fiber.Ctx) error {
	name := c.Params("*")

	// only direct children of the root are served
	if strings.ContainsAny(name, `/\`) {
		return handler.ErrNotFound
	}

	path, err := fsutil.JoinWithinRoot(s.root, name)
	if err != nil {
		return handler.ErrNotFound
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return handler.ErrNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "open %s", name)
	}

	c.Set(fiber.HeaderContentType, contentType(f, name))

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()

		return pkgerrors.Wrapf(err, "rewind %s", name)
	}

	downloads.Inc()

	// fasthttp closes f once the body is sent
	return c.SendStream(f, int(info.Size()))
}

// Upload stores every file part of a multipart body in the shared
// directory, replacing files with the same name, and redirects to the
// listing.
func (s *Service) Upload(c *fiber.Ctx) error {
	boundary, err := multipart.BoundaryFromContentType(c.Get(fiber.HeaderContentType))
	if err != nil {
		return err
	}

	// the body is only read during this call, no copy is needed
	parts, err := s.decoder.Decode(c.Request().Body(), boundary)
	if err != nil {
		return err
	}

	// resolve all names first so a bad part does not leave a partial upload
	paths := make([]string, len(parts))
	for i, p := range parts {
		if paths[i], err = fsutil.JoinWithinRoot(s.root, p.Filename); err != nil {
			return pkgerrors.Wrapf(err, "part %d", i+1)
		}
	}

	for i, p := range parts {
		n, err := fsutil.WriteFile(paths[i], bytes.NewReader(p.Data), filePerm)
		if err != nil {
			return pkgerrors.Wrapf(err, "store %s", filepath.Base(paths[i]))
		}

		uploadedFiles.Inc()
		uploadedBytes.Add(float64(n))

		log.Info().Str("file", filepath.Base(paths[i])).Int64("bytes", n).Msg("file uploaded")
	}

	return c.Redirect(handler.RootPath, fiber.StatusSeeOther)
}

// contentType guesses from the extension first and sniffs the content
// when the extension is unknown.
func contentType(f *os.File, name string) string {
	if ext := filepath.Ext(name); ext != "" {
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
	}

	m, err := mimetype.DetectReader(f)
	if err != nil {
		return fiber.MIMEOctetStream
	}

	return m.String()
}
