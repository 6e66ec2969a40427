package domain

import (
	"fmt"
	"html"
	"strconv"
	"time"
)

// EarthquakesLayer is the overlay name for the earthquake markers.
const EarthquakesLayer = "Earthquakes"

// popupTimeLayout mirrors the browser's default Date rendering.
const popupTimeLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// Marker is a styled circle marker for one feature.
type Marker struct {
	FeatureID string      `json:"feature_id,omitempty"`
	Lat       float64     `json:"lat"`
	Lon       float64     `json:"lon"`
	Magnitude float64     `json:"mag"`
	Depth     float64     `json:"depth"`
	Place     string      `json:"place"`
	Time      time.Time   `json:"time"`
	Style     MarkerStyle `json:"style"`
	Popup     string      `json:"popup"`
}

// Layer is a named, ordered set of markers.
type Layer struct {
	Name    string   `json:"name"`
	Markers []Marker `json:"markers"`
}

// BuildMarker converts a feature into a marker. Missing coordinates are read
// as 0 rather than rejected.
func BuildMarker(f Feature) Marker {
	return Marker{
		FeatureID: f.ID,
		Lat:       f.Latitude(),
		Lon:       f.Longitude(),
		Magnitude: f.Properties.Mag,
		Depth:     f.Depth(),
		Place:     f.Properties.Place,
		Time:      f.EventTime(),
		Style:     StyleFor(f),
		Popup:     PopupHTML(f),
	}
}

// BuildLayer builds the earthquake overlay. The Nth marker corresponds to the
// Nth feature.
func BuildLayer(fc FeatureCollection) Layer {
	markers := make([]Marker, len(fc.Features))
	for i := range fc.Features {
		markers[i] = BuildMarker(fc.Features[i])
	}
	return Layer{Name: EarthquakesLayer, Markers: markers}
}

// PopupHTML renders the popup body describing place, time, magnitude and depth.
func PopupHTML(f Feature) string {
	return fmt.Sprintf("<h3>Location: %s</h3><hr><p>Time: %s</p><p>Magnitude: %s</p><p>Depth: %s kms</p>",
		html.EscapeString(f.Properties.Place),
		FormatEventTime(f.EventTime()),
		formatNumber(f.Properties.Mag),
		formatNumber(f.Depth()),
	)
}

// FormatEventTime renders t in UTC, e.g. "Tue Nov 14 2023 22:13:20 GMT+0000 (UTC)".
func FormatEventTime(t time.Time) string {
	return t.UTC().Format(popupTimeLayout)
}

// formatNumber prints the shortest decimal that round-trips, so 5.0 renders as "5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
