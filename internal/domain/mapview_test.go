package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLegend(t *testing.T) {
	legend := BuildLegend()

	assert.Equal(t, "bottomright", legend.Position)
	assert.Equal(t, "Depth (in kms)", legend.Title)
	require.Len(t, legend.Rows, 6)

	want := []LegendRow{
		{Low: 0, Color: "#F58340", Label: "0–10"},
		{Low: 10, Color: "#BA6532", Label: "10–30"},
		{Low: 30, Color: "#8A4B25", Label: "30–50"},
		{Low: 50, Color: "#63361B", Label: "50–70"},
		{Low: 70, Color: "#3D2111", Label: "70–90"},
		{Low: 90, Color: "#1F1108", Label: "90+"},
	}
	if diff := cmp.Diff(want, legend.Rows); diff != "" {
		t.Fatalf("legend rows mismatch (-want +got):\n%s", diff)
	}

	for i, row := range legend.Rows[:5] {
		assert.False(t, strings.HasSuffix(row.Label, "+"), "row %d", i)
		assert.Equal(t, ColorForDepth(row.Low+1), row.Color)
	}
	assert.True(t, strings.HasSuffix(legend.Rows[5].Label, "+"))
}

func TestDepthBuckets_ReturnsCopy(t *testing.T) {
	b := DepthBuckets()
	b[0] = 999
	assert.Equal(t, []float64{0, 10, 30, 50, 70, 90}, DepthBuckets())
}

func TestCompose(t *testing.T) {
	fixed := time.Date(2024, time.April, 26, 12, 30, 45, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	layer := BuildLayer(FeatureCollection{Features: []Feature{quake(testPlace, -120, 35, 12)}})
	view := Compose(layer, WithTitle("USGS All Earthquakes, Past Week"))

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "USGS All Earthquakes, Past Week", view.Title)
	assert.Equal(t, "map", view.Container)
	assert.Equal(t, LatLng{Lat: 38, Lon: -98}, view.Center)
	assert.Equal(t, 5, view.Zoom)
	assert.Equal(t, fixed, view.GeneratedAt)

	require.Len(t, view.BaseLayers, 2)
	assert.Equal(t, "Street", view.BaseLayers[0].Name)
	assert.Contains(t, view.BaseLayers[0].URLTemplate, "tile.openstreetmap.org/{z}/{x}/{y}.png")
	assert.Contains(t, view.BaseLayers[0].Attribution, "OpenStreetMap")
	assert.Equal(t, "Topography", view.BaseLayers[1].Name)
	assert.Contains(t, view.BaseLayers[1].URLTemplate, "tile.opentopomap.org/{z}/{x}/{y}.png")
	assert.Contains(t, view.BaseLayers[1].Attribution, "OpenTopoMap")

	assert.Equal(t, []string{"Street", "Earthquakes"}, view.Visible)
	assert.Equal(t, LayerControl{
		Collapsed: false,
		Base:      []string{"Street", "Topography"},
		Overlays:  []string{"Earthquakes"},
	}, view.Control)
	assert.Equal(t, BuildLegend(), view.Legend)

	overlay, ok := view.Overlay(EarthquakesLayer)
	require.True(t, ok)
	assert.Len(t, overlay.Markers, 1)

	_, ok = view.Overlay("Faults")
	assert.False(t, ok)
}

func TestCompose_SnapshotIDs(t *testing.T) {
	a := Compose(Layer{})
	b := Compose(Layer{})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, EarthquakesLayer, a.Overlays[0].Name)

	fixed := Compose(Layer{}, WithSnapshotID("snap-1"))
	assert.Equal(t, "snap-1", fixed.ID)
}
