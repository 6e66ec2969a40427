package domain

import (
	"context"
	"log/slog"
	"strings"
)

// EnrichPlaces fills in the place of features that have coordinates but no
// place text, using reverse geocoding. The input collection is not modified.
// Geocoding failures leave the feature unchanged (graceful degradation).
// It returns the enriched collection and the number of places filled in.
func EnrichPlaces(ctx context.Context, fc FeatureCollection, geocoder Geocoder, logger *slog.Logger) (FeatureCollection, int) {
	if geocoder == nil {
		return fc, 0
	}

	out := fc
	out.Features = make([]Feature, len(fc.Features))
	copy(out.Features, fc.Features)

	enriched := 0
	for i := range out.Features {
		f := &out.Features[i]
		if strings.TrimSpace(f.Properties.Place) != "" {
			continue
		}
		lat, lon := f.Latitude(), f.Longitude()
		if lat == 0 && lon == 0 {
			continue
		}
		if ctx.Err() != nil {
			return out, enriched
		}

		result, err := geocoder.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"feature_id", f.ID,
				"lat", lat,
				"lon", lon,
				"error", err,
			)
			continue
		}
		if result.FormattedAddress == "" {
			continue
		}
		f.Properties.Place = result.FormattedAddress
		enriched++
	}
	return out, enriched
}
