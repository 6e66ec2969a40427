package usgs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/quakemap/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
  "type": "FeatureCollection",
  "metadata": {"generated": 1700000500000, "title": "USGS All Earthquakes, Past Week", "count": 2},
  "features": [
    {"type": "Feature", "id": "ci40000001",
     "properties": {"mag": 5.0, "place": "10km N of X", "time": 1700000000000},
     "geometry": {"type": "Point", "coordinates": [-120, 35, 12]}},
    {"type": "Feature", "id": "ak0231",
     "properties": {"mag": 1.4, "place": "42 km W of Willow, Alaska", "time": 1700000100000},
     "geometry": {"type": "Point", "coordinates": [-150.8, 61.7, 95.3]}}
  ]
}`

func testClient(url string) *Client {
	return NewClient(url, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetch_Success(t *testing.T) {
	srv := serve(http.StatusOK, sampleFeed)
	defer srv.Close()

	c := testClient(srv.URL)
	res := c.Fetch(context.Background())

	require.True(t, res.OK())
	require.NoError(t, res.Err)
	fc := res.Collection
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Equal(t, "USGS All Earthquakes, Past Week", fc.Metadata.Title)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "ci40000001", fc.Features[0].ID)
	assert.Equal(t, 12.0, fc.Features[0].Depth())
	assert.Equal(t, "ak0231", fc.Features[1].ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FeedRequests.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.metrics.FeaturesFetched))
}

func TestFetch_EmptyFeatures(t *testing.T) {
	srv := serve(http.StatusOK, `{"type":"FeatureCollection","features":[]}`)
	defer srv.Close()

	res := testClient(srv.URL).Fetch(context.Background())

	require.True(t, res.OK())
	assert.NotNil(t, res.Collection.Features)
	assert.Empty(t, res.Collection.Features)
}

func TestFetch_MissingFeaturesArray(t *testing.T) {
	srv := serve(http.StatusOK, `{"type":"FeatureCollection"}`)
	defer srv.Close()

	res := testClient(srv.URL).Fetch(context.Background())

	require.True(t, res.OK())
	assert.Empty(t, res.Collection.Features)
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "boom", "500"},
		{"not found", http.StatusNotFound, "", "404"},
		{"malformed JSON", http.StatusOK, `{"type":"FeatureCollection","features":[`, "decode feed"},
		{"not JSON", http.StatusOK, `<html>maintenance</html>`, "decode feed"},
		{"wrong type", http.StatusOK, `{"type":"Feature","features":[]}`, "not a FeatureCollection"},
		{"missing type", http.StatusOK, `{"features":[]}`, "not a FeatureCollection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(tt.status, tt.body)
			defer srv.Close()

			c := testClient(srv.URL)
			res := c.Fetch(context.Background())

			assert.False(t, res.OK())
			assert.Nil(t, res.Collection)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tt.wantErr)
			assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.FeedRequests.WithLabelValues("error")))
		})
	}
}

func TestFetch_WrongTypeIsSentinel(t *testing.T) {
	srv := serve(http.StatusOK, `{"type":"Topology"}`)
	defer srv.Close()

	res := testClient(srv.URL).Fetch(context.Background())
	assert.ErrorIs(t, res.Err, ErrNotFeatureCollection)
}

func TestFetch_Unreachable(t *testing.T) {
	srv := serve(http.StatusOK, sampleFeed)
	url := srv.URL
	srv.Close()

	res := testClient(url).Fetch(context.Background())

	assert.False(t, res.OK())
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "feed request")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	res := c.Fetch(context.Background())
	require.Error(t, res.Err)
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := serve(http.StatusOK, sampleFeed)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := testClient(srv.URL).Fetch(ctx)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
