package service

import (
	"context"

	"placebook/internal/domain/entity"
	"placebook/internal/errors"
)

// ErrRouteNotFound is returned when the provider cannot connect the points.
var ErrRouteNotFound = errors.New("routing: no route")

// RouteProvider is the boundary to an external routing service. The engine
// always requests a single driving route; the slice return leaves room for
// alternates without changing the contract.
type RouteProvider interface {
	// Route computes driving routes from origin to destination. Honors
	// context cancellation so a superseded request releases provider-side
	// resources promptly.
	Route(ctx context.Context, origin, destination entity.Coordinate) ([]entity.Route, error)
}
