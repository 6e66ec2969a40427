// Command validate checks a GeoJSON earthquake feed file for the fields the
// map depends on and verifies that the marker builder handles every feature.
// It exits non-zero when any feature is malformed.
//
// Usage:
//
//	go run ./cmd/validate -feed data/mock/all_week_sample.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/quakemap/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// rawFeed mirrors the feed with pointer fields so absent and null values can
// be told apart from zero.
type rawFeed struct {
	Type     *string `json:"type"`
	Metadata *struct {
		Count *int `json:"count"`
	} `json:"metadata"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	ID         string `json:"id"`
	Properties *struct {
		Mag   *float64 `json:"mag"`
		Place *string  `json:"place"`
		Time  *int64   `json:"time"`
	} `json:"properties"`
	Geometry *struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

func main() {
	feed := flag.String("feed", "", "path to a GeoJSON feed file")
	flag.Parse()

	if *feed == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*feed, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(path string, out io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "FATAL: read feed: %v\n", err)
		return 1
	}

	var raw rawFeed
	if err := json.Unmarshal(data, &raw); err != nil {
		fmt.Fprintf(out, "FATAL: decode feed: %v\n", err)
		return 1
	}
	var fc domain.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		fmt.Fprintf(out, "FATAL: decode feed: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "=== Earthquake Feed Validation ===")
	fmt.Fprintln(out)

	phases := []*phase{
		validateDocument(raw),
		validateFeatures(raw.Features),
		validateMarkers(fc),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-24s %s\n", p.name, status)
	}

	fmt.Fprintf(out, "\nFeatures: %d\n", len(raw.Features))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func validateDocument(raw rawFeed) *phase {
	p := &phase{name: "Document shape"}
	if raw.Type == nil || *raw.Type != "FeatureCollection" {
		p.errorf("type is not FeatureCollection")
	}
	if raw.Metadata != nil && raw.Metadata.Count != nil && *raw.Metadata.Count != len(raw.Features) {
		p.errorf("metadata.count=%d but %d features present", *raw.Metadata.Count, len(raw.Features))
	}
	return p
}

func validateFeatures(features []rawFeature) *phase {
	p := &phase{name: "Feature fields"}
	for i, f := range features {
		label := featureLabel(i, f.ID)
		if f.Properties == nil {
			p.errorf("%s: missing properties", label)
		} else {
			if f.Properties.Mag == nil {
				p.errorf("%s: missing mag", label)
			}
			if f.Properties.Place == nil {
				p.errorf("%s: missing place", label)
			}
			if f.Properties.Time == nil {
				p.errorf("%s: missing time", label)
			}
		}
		if f.Geometry == nil {
			p.errorf("%s: missing geometry", label)
		} else if n := len(f.Geometry.Coordinates); n != 3 {
			p.errorf("%s: coordinates has %d elements, want 3", label, n)
		}
	}
	return p
}

// validateMarkers builds the overlay and checks it lines up with the input.
func validateMarkers(fc domain.FeatureCollection) *phase {
	p := &phase{name: "Marker build"}
	layer := domain.BuildLayer(fc)
	if len(layer.Markers) != len(fc.Features) {
		p.errorf("built %d markers for %d features", len(layer.Markers), len(fc.Features))
		return p
	}
	for i, f := range fc.Features {
		m := layer.Markers[i]
		if m.FeatureID != f.ID {
			p.errorf("%s: marker %d is for %q", featureLabel(i, f.ID), i, m.FeatureID)
		}
		if want := domain.ColorForDepth(f.Depth()); m.Style.FillColor != want {
			p.errorf("%s: fill %s, want %s", featureLabel(i, f.ID), m.Style.FillColor, want)
		}
	}
	return p
}

func featureLabel(i int, id string) string {
	if id == "" {
		return fmt.Sprintf("feature[%d]", i)
	}
	return fmt.Sprintf("feature[%d] %s", i, id)
}
