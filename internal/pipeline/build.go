package pipeline

import (
	"context"

	"github.com/couchcryptid/quakemap/internal/domain"
)

const defaultTitle = "Earthquakes"

// build turns a fetched collection into a composed map view.
func (p *Pipeline) build(ctx context.Context, fc domain.FeatureCollection) *domain.MapView {
	if p.geocoder != nil {
		var enriched int
		fc, enriched = domain.EnrichPlaces(ctx, fc, p.geocoder, p.logger)
		p.logger.Info("places enriched", "count", enriched)
	}

	layer := domain.BuildLayer(fc)
	p.metrics.MarkersBuilt.Add(float64(len(layer.Markers)))

	title := fc.Metadata.Title
	if title == "" {
		title = defaultTitle
	}
	return domain.Compose(layer, domain.WithTitle(title))
}
