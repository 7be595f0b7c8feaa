package usecase

import (
	"context"

	"placebook/internal/domain/entity"
)

// RouteState tracks the router's request lifecycle.
type RouteState string

const (
	RouteStateIdle       RouteState = "idle"
	RouteStateRequesting RouteState = "requesting"
	RouteStateSucceeded  RouteState = "succeeded"
	RouteStateFailed     RouteState = "failed"
)

// RoutingUsecase computes driving routes from an origin to the resolved
// destination. A new request actively cancels the in-flight provider call
// and discards the previous result before dispatching, so stale route
// overlays never coexist with a fresh request's.
type RoutingUsecase interface {
	// SetDestination fixes the routing destination directly.
	SetDestination(coord entity.Coordinate)

	// ResolveDestination geocodes a free-text address and, on success,
	// stores the coordinate as the routing destination.
	ResolveDestination(ctx context.Context, address string) (entity.Coordinate, error)

	// ComputeRoute requests a single driving route from origin to the
	// stored destination. Fails with a validation error when no
	// destination was resolved. A superseded call returns
	// ErrRequestSuperseded; its result is never applied.
	ComputeRoute(ctx context.Context, origin entity.Coordinate) ([]entity.Route, error)

	// ActiveRoutes returns the overlay of the latest successful request,
	// or nil while none is active.
	ActiveRoutes() []entity.Route

	// State returns the current request state.
	State() RouteState
}
