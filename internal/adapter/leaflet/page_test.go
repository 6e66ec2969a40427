package leaflet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/couchcryptid/quakemap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView(place string) *domain.MapView {
	layer := domain.BuildLayer(domain.FeatureCollection{Features: []domain.Feature{{
		Type:       "Feature",
		ID:         "ci40000001",
		Properties: domain.Properties{Mag: 5, Place: place, Time: 1700000000000},
		Geometry:   domain.Geometry{Type: "Point", Coordinates: []float64{-120, 35, 12}},
	}}})
	return domain.Compose(layer, domain.WithTitle("USGS All Earthquakes, Past Week"), domain.WithSnapshotID("snap-1"))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testView("10km N of X")))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>USGS All Earthquakes, Past Week</title>")
	assert.Contains(t, out, `<div id="map"></div>`)
	assert.Contains(t, out, LeafletCSS)
	assert.Contains(t, out, LeafletJS)

	// The view is embedded as JSON.
	assert.Contains(t, out, `"id":"snap-1"`)
	assert.Contains(t, out, `"fillColor":"#BA6532"`)
	assert.Contains(t, out, `"radius":20`)
	assert.Contains(t, out, `"collapsed":false`)
	assert.Contains(t, out, `"position":"bottomright"`)
	assert.Contains(t, out, "tile.opentopomap.org")
	assert.Contains(t, out, "10km N of X")
}

func TestRender_EscapesPopupMarkup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testView(`</script><script>alert(1)</script>`)))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "<script"), "only the Leaflet and bootstrap scripts")
	assert.NotContains(t, out, "alert(1)</script>")
}

func TestRender_EscapesTitle(t *testing.T) {
	view := testView("x")
	view.Title = "<b>quakes</b>"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, view))
	assert.Contains(t, buf.String(), "<title>&lt;b&gt;quakes&lt;/b&gt;</title>")
}

func TestRender_NilView(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, nil)
	assert.True(t, errors.Is(err, ErrNilView))
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, testView("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render map page")
}
