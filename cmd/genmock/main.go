// Command genmock writes a deterministic USGS summary feed fixture used by the
// pipeline and HTTP test suites. Marker styling is computed with the real
// domain package so the printed stats match what the tests assert.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/all_week_sample.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/quakemap/internal/config"
	"github.com/couchcryptid/quakemap/internal/domain"
)

// generated is the fixed feed generation time, 2024-04-25T00:00:00Z.
const generated int64 = 1714003200000

// step separates consecutive events, newest first as the live feed orders them.
const step int64 = 90 * 60 * 1000

type quakeDef struct {
	id    string
	mag   float64
	place string
	lon   float64
	lat   float64
	depth float64
}

// Depths cover every legend bucket, including the 10 and 90 km boundaries.
var quakes = []quakeDef{
	{"ci40567890", 4.4, "12 km SW of Ridgecrest, CA", -117.7512, 35.5412, 7.9},
	{"us7000mab1", 5.8, "105 km SE of Sand Point, Alaska", -159.5121, 54.6023, 35.2},
	{"nc75012345", 2.1, "5 km NW of The Geysers, CA", -122.8055, 38.8103, 2.3},
	{"us7000mab2", 6.1, "Fiji region", -178.2109, -17.9542, 562.4},
	{"ak024567", 1.8, "42 km W of Willow, Alaska", -150.8231, 61.7402, 95.3},
	{"us7000mab3", 4.9, "southern Peru", -70.4312, -15.5521, 71.8},
	{"hv74321", 2.6, "8 km S of Volcano, Hawaii", -155.2456, 19.3567, 31.4},
	{"us7000mab4", 5.2, "central Mid-Atlantic Ridge", -29.8734, 0.9123, 10},
	{"ok2024abcd", 2.9, "3 km N of Prague, Oklahoma", -96.6853, 35.5134, 5.1},
	{"us7000mab5", 4.6, "Kermadec Islands region", -176.3345, -29.7012, 52.6},
	{"mb90045678", 1.2, "21 km SSE of Lincoln, Montana", -112.5623, 46.7801, 12.5},
	{"us7000mab6", 3.9, "Puerto Rico region", -66.8712, 18.1234, 90},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the GeoJSON feed fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	fc := buildCollection()
	if err := writeJSON(*out, fc); err != nil {
		return fmt.Errorf("writing feed fixture: %w", err)
	}
	log.Printf("wrote feed fixture: %s (%d features)", *out, len(fc.Features))

	printStats(fc)
	return nil
}

func buildCollection() domain.FeatureCollection {
	features := make([]domain.Feature, len(quakes))
	for i, q := range quakes {
		features[i] = domain.Feature{
			Type: "Feature",
			ID:   q.id,
			Properties: domain.Properties{
				Mag:   q.mag,
				Place: q.place,
				Time:  generated - int64(i+1)*step,
				URL:   "https://earthquake.usgs.gov/earthquakes/eventpage/" + q.id,
			},
			Geometry: domain.Geometry{
				Type:        "Point",
				Coordinates: []float64{q.lon, q.lat, q.depth},
			},
		}
	}
	return domain.FeatureCollection{
		Type: "FeatureCollection",
		Metadata: domain.Metadata{
			Generated: generated,
			URL:       config.DefaultFeedURL,
			Title:     "USGS All Earthquakes, Past Week",
			Count:     len(features),
		},
		Features: features,
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(fc domain.FeatureCollection) {
	layer := domain.BuildLayer(fc)

	counts := map[string]int{}
	for _, m := range layer.Markers {
		counts[m.Style.FillColor]++
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(layer.Markers))
	fmt.Println("By legend bucket:")
	for _, row := range domain.BuildLegend().Rows {
		fmt.Printf("  %-6s %s = %d\n", row.Label, row.Color, counts[row.Color])
	}
	if len(layer.Markers) > 0 {
		first := layer.Markers[0]
		fmt.Printf("First marker: %s radius=%g fill=%s\n", first.FeatureID, first.Style.Radius, first.Style.FillColor)
		fmt.Printf("First popup: %s\n", first.Popup)
	}
}
