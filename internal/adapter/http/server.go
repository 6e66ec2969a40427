package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quakemap/internal/adapter/leaflet"
	"github.com/couchcryptid/quakemap/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SnapshotSource provides the map built at startup, or nil before it exists.
type SnapshotSource interface {
	Snapshot() *domain.MapView
}

// Server serves the rendered map, its JSON descriptions, and the health,
// readiness and metrics endpoints.
type Server struct {
	httpServer *http.Server
	snapshots  SnapshotSource
	logger     *slog.Logger
}

// NewServer creates the HTTP server. CORS applies to the /api routes only.
func NewServer(addr string, snapshots SnapshotSource, ready sharedobs.ReadinessChecker, corsOrigins []string, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		snapshots: snapshots,
		logger:    logger,
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/", s.handlePage)
	router.Get("/healthz", sharedobs.LivenessHandler())
	router.Get("/readyz", sharedobs.ReadinessHandler(ready))
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/map", s.handleMap)
		r.Get("/legend", s.handleLegend)
		r.Get("/earthquakes.geojson", s.handleGeoJSON)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// snapshot returns the current view, writing a 503 when there is none.
func (s *Server) snapshot(w http.ResponseWriter) (*domain.MapView, bool) {
	view := s.snapshots.Snapshot()
	if view == nil {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "map snapshot has not been built",
		})
		return nil, false
	}
	return view, true
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	view, ok := s.snapshot(w)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := leaflet.Render(&buf, view); err != nil {
		s.logger.Error("render page failed", "snapshot_id", view.ID, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	if view, ok := s.snapshot(w); ok {
		sharedobs.WriteJSON(w, http.StatusOK, view)
	}
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	if view, ok := s.snapshot(w); ok {
		sharedobs.WriteJSON(w, http.StatusOK, view.Legend)
	}
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, _ *http.Request) {
	view, ok := s.snapshot(w)
	if !ok {
		return
	}
	layer, _ := view.Overlay(domain.EarthquakesLayer)
	data, err := markersToGeoJSON(layer.Markers).MarshalJSON()
	if err != nil {
		s.logger.Error("encode geojson failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode failed"})
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// markersToGeoJSON converts styled markers back into 2D GeoJSON points
// carrying their style and popup fields as properties.
func markersToGeoJSON(markers []domain.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Lon, m.Lat})
		if m.FeatureID != "" {
			f.ID = m.FeatureID
		}
		f.Properties["place"] = m.Place
		f.Properties["time"] = m.Time.UnixMilli()
		f.Properties["mag"] = m.Magnitude
		f.Properties["depth"] = m.Depth
		f.Properties["radius"] = m.Style.Radius
		f.Properties["fillColor"] = m.Style.FillColor
		f.Properties["popup"] = m.Popup
		fc.Append(f)
	}
	return fc
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
