package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base layer names. Exactly one base layer is visible at a time.
const (
	StreetLayer     = "Street"
	TopographyLayer = "Topography"
)

// Default view settings: continental US.
const (
	DefaultContainer = "map"
	DefaultZoom      = 5
)

// DefaultCenter is the initial map center.
var DefaultCenter = LatLng{Lat: 38, Lon: -98}

// LatLng is a WGS-84 position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TileLayer is a raster tile source with its required attribution.
type TileLayer struct {
	Name        string `json:"name"`
	URLTemplate string `json:"url"`
	Attribution string `json:"attribution"`
}

// LayerControl describes the layer switcher.
type LayerControl struct {
	Collapsed bool     `json:"collapsed"`
	Base      []string `json:"base"`
	Overlays  []string `json:"overlays"`
}

// MapView is the complete, declarative description of the map. It is built
// once by Compose and is not modified afterwards.
type MapView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Container   string       `json:"container"`
	Center      LatLng       `json:"center"`
	Zoom        int          `json:"zoom"`
	BaseLayers  []TileLayer  `json:"base_layers"`
	Overlays    []Layer      `json:"overlays"`
	Visible     []string     `json:"visible"`
	Control     LayerControl `json:"control"`
	Legend      Legend       `json:"legend"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// ComposeOption customizes Compose.
type ComposeOption func(*MapView)

// WithTitle sets the page title.
func WithTitle(title string) ComposeOption {
	return func(v *MapView) { v.Title = title }
}

// WithSnapshotID overrides the generated snapshot id.
func WithSnapshotID(id string) ComposeOption {
	return func(v *MapView) { v.ID = id }
}

// BaseTileLayers returns the street and topographic tile sources.
func BaseTileLayers() []TileLayer {
	return []TileLayer{
		{
			Name:        StreetLayer,
			URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		},
		{
			Name:        TopographyLayer,
			URLTemplate: "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
			Attribution: `Map data: &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors, ` +
				`<a href="http://viewfinderpanoramas.org">SRTM</a> | Map style: &copy; <a href="https://opentopomap.org">OpenTopoMap</a> ` +
				`(<a href="https://creativecommons.org/licenses/by-sa/3.0/">CC-BY-SA</a>)`,
		},
	}
}

// BuildLayerControl returns an expanded layer switcher over the given base
// layers and overlays.
func BuildLayerControl(base []TileLayer, overlays []Layer) LayerControl {
	c := LayerControl{
		Base:     make([]string, len(base)),
		Overlays: make([]string, len(overlays)),
	}
	for i, b := range base {
		c.Base[i] = b.Name
	}
	for i, o := range overlays {
		c.Overlays[i] = o.Name
	}
	return c
}

// Compose assembles the map around the earthquake overlay: street and
// topographic base layers, the layer switcher and the depth legend. The
// street layer and the overlay are visible initially.
func Compose(earthquakes Layer, opts ...ComposeOption) *MapView {
	if earthquakes.Name == "" {
		earthquakes.Name = EarthquakesLayer
	}
	base := BaseTileLayers()
	overlays := []Layer{earthquakes}

	v := &MapView{
		ID:          uuid.NewString(),
		Container:   DefaultContainer,
		Center:      DefaultCenter,
		Zoom:        DefaultZoom,
		BaseLayers:  base,
		Overlays:    overlays,
		Visible:     []string{StreetLayer, earthquakes.Name},
		Control:     BuildLayerControl(base, overlays),
		Legend:      BuildLegend(),
		GeneratedAt: clock.Now().UTC(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Overlay returns the overlay with the given name.
func (v *MapView) Overlay(name string) (Layer, bool) {
	for _, o := range v.Overlays {
		if o.Name == name {
			return o, true
		}
	}
	return Layer{}, false
}
