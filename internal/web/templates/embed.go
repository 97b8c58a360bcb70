// Package templates builds the HTML view engine over the embedded page
// templates.
package templates

import (
	"embed"
	"io/fs"
	"net/http"
	"net/url"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
)

// Extension of every template file.
const Extension = ".gohtml"

// devDir is used instead of the embedded files in dev mode.
const devDir = "./internal/web/templates/views"

//go:embed views/*
var embeddedTemplates embed.FS

// templateEmbedFS is a wrapper around embed.FS to implement fs.FS interface
// for the 'views' directory.
type templateEmbedFS struct {
	content embed.FS
}

// Open opens the named file from the 'views' directory.
func (e templateEmbedFS) Open(name string) (fs.File, error) {
	return e.content.Open(path.Join("views", name))
}

// NewEngine returns the view engine. In dev mode templates are read from
// the source tree and reloaded on every render.
func NewEngine(devMode bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), Extension)

	if devMode {
		engine = html.New(devDir, Extension)
		engine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	engine.AddFunc("pathEscape", url.PathEscape)
	engine.AddFunc("humanSize", func(n int64) string {
		if n < 0 {
			return ""
		}

		return humanize.IBytes(uint64(n))
	})

	return engine
}
