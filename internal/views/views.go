// Package views renders the HTML pages and serves their static assets.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sync"

	"github.com/i474232898/weathertracker/internal/weather"
)

// Page is the data every template receives.
type Page struct {
	Title    string
	Location string
	Error    string
	Weather  *weather.Report
}

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Engine implements fiber.Views on top of html/template with embedded templates.
type Engine struct {
	mu        sync.RWMutex
	templates *template.Template
}

// New returns an engine; templates are parsed by Load.
func New() *Engine {
	return &Engine{}
}

// Load parses all embedded templates.
func (e *Engine) Load() error {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	e.mu.Lock()
	e.templates = t
	e.mu.Unlock()
	return nil
}

// Render executes the named template. Layouts are not used; pages include the shared
// partials themselves.
func (e *Engine) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	e.mu.RLock()
	t := e.templates
	e.mu.RUnlock()

	if t == nil {
		if err := e.Load(); err != nil {
			return err
		}
		return e.Render(w, name, data)
	}

	tmpl := t.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.Execute(w, data)
}

// Static returns the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
