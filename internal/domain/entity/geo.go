package entity

import "math"

const earthRadiusMeters = 6371000.0

// Coordinate represents a geographic point in decimal degrees.
// Coordinates are transient: they come from the geocoder or the location
// tracker and are never persisted on a Place.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is inside Earth bounds and finite.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) ||
		math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}

	return c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180
}

// DistanceMeters returns the great circle distance to another coordinate.
func (c Coordinate) DistanceMeters(other Coordinate) float64 {
	lat1 := c.Lat * math.Pi / 180
	lng1 := c.Lng * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	lng2 := other.Lng * math.Pi / 180

	deltaLat := lat2 - lat1
	deltaLng := lng2 - lng1

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c2 := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c2
}

// Route is a navigable path between two coordinates. One or more are
// produced per routing request and superseded wholesale by the next one.
type Route struct {
	Polyline        []Coordinate `json:"polyline"`
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
}

// RegionOfInterest frames the map view around a focal point. Recomputed
// whenever the focal point moves far enough; never persisted.
type RegionOfInterest struct {
	Center     Coordinate `json:"center"`
	SpanMeters float64    `json:"span_meters"`
}
