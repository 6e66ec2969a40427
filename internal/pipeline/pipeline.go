package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quakemap/internal/domain"
	"github.com/couchcryptid/quakemap/internal/observability"
)

// ErrAlreadyRan is returned by Run on every call after the first.
var ErrAlreadyRan = errors.New("pipeline already ran")

// ErrEmptyFetch is reported when a fetcher returns neither a collection nor an error.
var ErrEmptyFetch = errors.New("fetch returned no collection")

// Fetcher retrieves the earthquake feed once.
type Fetcher interface {
	Fetch(ctx context.Context) domain.FetchResult
}

// Publisher ships the finished map to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, view *domain.MapView) error
}

// Option configures optional pipeline stages.
type Option func(*Pipeline)

// WithGeocoder enables place enrichment for features without a place.
func WithGeocoder(g domain.Geocoder) Option {
	return func(p *Pipeline) { p.geocoder = g }
}

// WithPublisher publishes every marker after the map is composed.
func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// Pipeline builds one map snapshot: fetch, enrich, build, compose, publish.
type Pipeline struct {
	fetcher   Fetcher
	geocoder  domain.Geocoder
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	started   atomic.Bool
	snapshot  atomic.Pointer[domain.MapView]
}

// New creates a Pipeline around the given fetcher.
func New(f Fetcher, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: f,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a snapshot has been built, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.snapshot.Load() == nil {
		return errors.New("map snapshot has not been built")
	}
	return nil
}

// Snapshot returns the built map, or nil before a successful Run.
func (p *Pipeline) Snapshot() *domain.MapView {
	return p.snapshot.Load()
}

// Run builds the snapshot. It runs at most once; later calls return
// ErrAlreadyRan. A fetch failure returns the wrapped cause and leaves the
// pipeline not ready.
func (p *Pipeline) Run(ctx context.Context) (*domain.MapView, error) {
	if !p.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRan
	}

	start := time.Now()
	p.logger.Info("snapshot build started")

	res := p.fetcher.Fetch(ctx)
	if !res.OK() {
		err := res.Err
		if err == nil {
			err = ErrEmptyFetch
		}
		p.metrics.SnapshotBuilds.WithLabelValues("error").Inc()
		p.metrics.SnapshotReady.Set(0)
		p.logger.Error("snapshot build failed", "error", err)
		return nil, fmt.Errorf("fetch earthquake feed: %w", err)
	}

	view := p.build(ctx, *res.Collection)
	p.snapshot.Store(view)
	p.metrics.SnapshotBuilds.WithLabelValues("success").Inc()
	p.metrics.SnapshotReady.Set(1)

	p.logger.Info("snapshot built",
		"snapshot_id", view.ID,
		"markers", len(view.Overlays[0].Markers),
		"duration", time.Since(start),
	)

	p.publish(ctx, view)
	return view, nil
}

// publish hands the view to the publisher. Failures are logged and counted
// but do not invalidate the snapshot.
func (p *Pipeline) publish(ctx context.Context, view *domain.MapView) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, view); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish markers failed", "snapshot_id", view.ID, "error", err)
	}
}
