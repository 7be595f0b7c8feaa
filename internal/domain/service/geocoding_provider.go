// Package service defines interfaces for external collaborators the use
// cases depend on (geocoding, routing, QR generation).
package service

import (
	"context"

	"placebook/internal/domain/entity"
	"placebook/internal/errors"
)

// ErrNoMatch is returned when the provider has no result for the input.
var ErrNoMatch = errors.New("geocoding: no match")

// Placemark is a forward geocoding hit: the resolved coordinate plus
// optional name/category hints from the provider.
type Placemark struct {
	Coordinate entity.Coordinate
	Name       string
	Category   string
}

// GeocodingProvider is the boundary to an external geocoding service.
// Both calls honor context cancellation; callers use that to abandon
// superseded requests.
type GeocodingProvider interface {
	// Forward resolves a free-text address to its first/best match.
	Forward(ctx context.Context, address string) (*Placemark, error)

	// Reverse resolves a coordinate to a short human-readable address:
	// street name plus building number joined with ", " when the number
	// is present, the street alone otherwise, "" when neither is known.
	Reverse(ctx context.Context, coord entity.Coordinate) (string, error)
}
