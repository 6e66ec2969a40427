// Package domain models USGS earthquake feed data and the declarative map
// built from it.
//
// # Data Source
//
// Earthquakes come from the USGS real-time GeoJSON summary feeds, e.g.
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// The feed is a GeoJSON FeatureCollection; each Feature is one event.
//
// # USGS Feed Conventions
//
// Coordinates:
//
//	[longitude, latitude, depth]  →  e.g. [-120, 35, 12]
//	Depth is in kilometers below the surface. Shallow events near the
//	surface may report small negative depths; those are passed through.
//
// Time:
//
//	properties.time is milliseconds since the Unix epoch, UTC.
//
// Magnitude:
//
//	properties.mag is a real number and may be null for unreviewed events.
//	A null magnitude decodes as 0 and yields a zero-radius marker.
//
// Place:
//
//	properties.place is a free-text description such as "10km N of Parkfield, CA".
//	It may be empty; see [EnrichPlaces].
//
// # Styling
//
// Marker color is chosen from six depth buckets by [ColorForDepth] and the
// marker radius scales linearly with magnitude via [RadiusForMagnitude]. The
// legend shows the same buckets using the swatch for one kilometer above each
// threshold so the color lands strictly inside the bucket.
//
// # Map Description
//
// [Compose] turns a [Layer] of markers into a [MapView]: base tile layers,
// overlays, a layer switcher and the legend. A MapView is plain data; the
// leaflet adapter renders it into a page.
package domain
