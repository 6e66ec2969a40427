package domain

import "time"

// FeatureCollection is the GeoJSON document served by the USGS summary feeds.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Metadata Metadata  `json:"metadata"`
	Features []Feature `json:"features"`
}

// Metadata is the USGS feed header.
type Metadata struct {
	Generated int64  `json:"generated"` // ms since epoch
	URL       string `json:"url,omitempty"`
	Title     string `json:"title,omitempty"`
	Count     int    `json:"count"`
}

// Feature is one earthquake record.
type Feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id,omitempty"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties holds the subset of USGS event properties used for the map.
type Properties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // ms since epoch
	URL   string  `json:"url,omitempty"`
}

// Geometry is a GeoJSON point with [lon, lat, depth_km] coordinates.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Longitude returns coordinates[0], or 0 when absent.
func (f Feature) Longitude() float64 { return f.coordinate(0) }

// Latitude returns coordinates[1], or 0 when absent.
func (f Feature) Latitude() float64 { return f.coordinate(1) }

// Depth returns coordinates[2] in kilometers, or 0 when absent.
func (f Feature) Depth() float64 { return f.coordinate(2) }

// EventTime converts the epoch-millisecond timestamp to a UTC time.
func (f Feature) EventTime() time.Time {
	return time.UnixMilli(f.Properties.Time).UTC()
}

func (f Feature) coordinate(i int) float64 {
	if i >= len(f.Geometry.Coordinates) {
		return 0
	}
	return f.Geometry.Coordinates[i]
}
