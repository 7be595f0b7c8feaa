package usecase

import (
	"context"

	"placebook/internal/domain/entity"
	"placebook/internal/domain/service"
)

// GeocodingUsecase resolves free-text addresses to coordinates and back.
// Both directions are last-request-wins: starting a new request cancels the
// in-flight one of the same direction, and the superseded caller gets
// ErrRequestSuperseded, which is dropped silently by the view layer.
type GeocodingUsecase interface {
	// ResolveAddress resolves a free-text address to its first/best match.
	ResolveAddress(ctx context.Context, address string) (*service.Placemark, error)

	// ReverseGeocode resolves a coordinate to a short street address
	// ("street, number" when the number is known). Safe to call on every
	// map pan; earlier pending calls are abandoned without queueing.
	ReverseGeocode(ctx context.Context, coord entity.Coordinate) (string, error)
}
