package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/quakemap/internal/domain"
	"github.com/couchcryptid/quakemap/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadMockFeed(t *testing.T) domain.FeatureCollection {
	t.Helper()

	path := filepath.Join("..", "..", "data", "mock", "all_week_sample.geojson")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc domain.FeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	return fc
}

func TestPipeline_WithMockFeed(t *testing.T) {
	fc := loadMockFeed(t)
	require.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 12)
	require.Equal(t, fc.Metadata.Count, len(fc.Features))

	p := pipeline.New(&mockFetcher{result: domain.FetchResult{Collection: &fc}}, discardLogger(), newTestMetrics())
	view, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "USGS All Earthquakes, Past Week", view.Title)

	layer, ok := view.Overlay(domain.EarthquakesLayer)
	require.True(t, ok)
	require.Len(t, layer.Markers, len(fc.Features))

	for i, f := range fc.Features {
		m := layer.Markers[i]
		assert.Equal(t, f.ID, m.FeatureID, "marker %d", i)
		assert.Equal(t, f.Latitude(), m.Lat)
		assert.Equal(t, f.Longitude(), m.Lon)
		assert.InDelta(t, f.Properties.Mag*4, m.Style.Radius, 1e-9)
		assert.Equal(t, domain.ColorForDepth(f.Depth()), m.Style.FillColor)
		assert.Contains(t, m.Popup, f.Properties.Place)
	}

	counts := map[string]int{}
	for _, m := range layer.Markers {
		counts[m.Style.FillColor]++
	}
	assert.Equal(t, map[string]int{
		"#F58340": 4,
		"#BA6532": 1,
		"#8A4B25": 2,
		"#63361B": 1,
		"#3D2111": 2,
		"#1F1108": 2,
	}, counts)

	first := layer.Markers[0]
	assert.Equal(t, "ci40567890", first.FeatureID)
	assert.InDelta(t, 17.6, first.Style.Radius, 1e-9)
	assert.Equal(t,
		"<h3>Location: 12 km SW of Ridgecrest, CA</h3><hr><p>Time: Wed Apr 24 2024 22:30:00 GMT+0000 (UTC)</p>"+
			"<p>Magnitude: 4.4</p><p>Depth: 7.9 kms</p>",
		first.Popup)
}

func TestMockFeed_BoundaryDepths(t *testing.T) {
	fc := loadMockFeed(t)

	byID := map[string]domain.Feature{}
	for _, f := range fc.Features {
		byID[f.ID] = f
	}

	// 10 km and 90 km sit on bucket boundaries and fall into the shallower bucket.
	assert.Equal(t, "#F58340", domain.StyleFor(byID["us7000mab4"]).FillColor)
	assert.Equal(t, "#3D2111", domain.StyleFor(byID["us7000mab6"]).FillColor)
}
