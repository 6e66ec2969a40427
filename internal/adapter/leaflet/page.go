// Package leaflet renders a MapView as a standalone Leaflet HTML page.
package leaflet

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/quakemap/internal/domain"
)

// Leaflet assets loaded from the unpkg CDN.
const (
	LeafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

// ErrNilView is returned when there is no map to render.
var ErrNilView = errors.New("leaflet: nil map view")

//go:embed templates/page.html.tmpl
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/page.html.tmpl"))

type pageData struct {
	View       *domain.MapView
	LeafletCSS string
	LeafletJS  string
}

// Render writes the page for view to w. The page embeds the view as JSON and
// only instantiates what it describes.
func Render(w io.Writer, view *domain.MapView) error {
	if view == nil {
		return ErrNilView
	}
	data := pageData{
		View:       view,
		LeafletCSS: LeafletCSS,
		LeafletJS:  LeafletJS,
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	return nil
}
