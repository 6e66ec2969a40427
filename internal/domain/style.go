package domain

// Fixed marker stroke and fill settings shared by every earthquake marker.
const (
	StrokeColor   = "#000"
	StrokeWeight  = 1
	StrokeOpacity = 1.0
	FillOpacity   = 0.8
)

// ColorForDepth maps a depth in kilometers to its bucket color. Deeper
// earthquakes are darker. Each bucket's lower bound is exclusive, so a depth
// of exactly 90 falls in the ">70" bucket. NaN falls through to the
// shallowest color.
func ColorForDepth(d float64) string {
	switch {
	case d > 90:
		return "#1F1108"
	case d > 70:
		return "#3D2111"
	case d > 50:
		return "#63361B"
	case d > 30:
		return "#8A4B25"
	case d > 10:
		return "#BA6532"
	default:
		return "#F58340"
	}
}

// RadiusForMagnitude scales magnitude to a marker radius in pixels.
// Zero or negative magnitudes are not clamped.
func RadiusForMagnitude(m float64) float64 {
	return m * 4
}

// MarkerStyle uses Leaflet path option names so it can be handed to the
// renderer as-is.
type MarkerStyle struct {
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
}

// StyleFor derives the marker style for a single feature.
func StyleFor(f Feature) MarkerStyle {
	return MarkerStyle{
		Radius:      RadiusForMagnitude(f.Properties.Mag),
		FillColor:   ColorForDepth(f.Depth()),
		Color:       StrokeColor,
		Weight:      StrokeWeight,
		Opacity:     StrokeOpacity,
		FillOpacity: FillOpacity,
	}
}
