package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/domain/service"
	"placebook/internal/usecase"
)

type routingService struct {
	provider  service.RouteProvider
	geocoding usecase.GeocodingUsecase
	logger    *slog.Logger

	mu           sync.Mutex
	destination  *entity.Coordinate
	state        usecase.RouteState
	activeRoutes []entity.Route
	slot         requestSlot
}

// NewRoutingService creates the route engine over a route provider and the
// address resolver used for destination lookup.
func NewRoutingService(provider service.RouteProvider, geocoding usecase.GeocodingUsecase, logger *slog.Logger) usecase.RoutingUsecase {
	return &routingService{
		provider:  provider,
		geocoding: geocoding,
		logger:    logger,
		state:     usecase.RouteStateIdle,
	}
}

// SetDestination fixes the routing destination directly.
func (s *routingService) SetDestination(coord entity.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.destination = &coord
}

// ResolveDestination geocodes a free-text address and stores the coordinate
// as the routing destination on success.
func (s *routingService) ResolveDestination(ctx context.Context, address string) (entity.Coordinate, error) {
	placemark, err := s.geocoding.ResolveAddress(ctx, address)
	if err != nil {
		return entity.Coordinate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.destination = &placemark.Coordinate

	return placemark.Coordinate, nil
}

// ComputeRoute requests a driving route from origin to the stored
// destination. The previous overlay is discarded and any in-flight request
// cancelled before the new one dispatches; a superseded call never applies
// its result.
func (s *routingService) ComputeRoute(ctx context.Context, origin entity.Coordinate) ([]entity.Route, error) {
	s.mu.Lock()
	if s.destination == nil {
		s.mu.Unlock()

		return nil, domainerrors.ErrDestinationNotSet
	}
	destination := *s.destination

	if s.slot.cancel != nil {
		s.slot.cancel()
	}
	callCtx, cancel := context.WithCancel(ctx)
	s.slot.seq++
	s.slot.cancel = cancel
	seq := s.slot.seq

	// Clear the overlay before dispatch so a stale route never shows next
	// to an in-flight request.
	s.activeRoutes = nil
	s.state = usecase.RouteStateRequesting
	s.mu.Unlock()

	routes, err := s.provider.Route(callCtx, origin, destination)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slot.seq != seq {
		return nil, domainerrors.ErrRequestSuperseded
	}
	cancel()
	s.slot.cancel = nil

	if err != nil {
		s.state = usecase.RouteStateFailed

		if errors.Is(err, service.ErrRouteNotFound) {
			return nil, domainerrors.ErrNoRouteFound
		}

		return nil, domainerrors.ErrRoutingFailed.WrapMessage(
			fmt.Sprintf("failed to compute route: %s", err))
	}

	s.state = usecase.RouteStateSucceeded
	s.activeRoutes = routes

	return routes, nil
}

// ActiveRoutes returns the overlay of the latest successful request.
func (s *routingService) ActiveRoutes() []entity.Route {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeRoutes == nil {
		return nil
	}

	out := make([]entity.Route, len(s.activeRoutes))
	copy(out, s.activeRoutes)

	return out
}

// State returns the current request state.
func (s *routingService) State() usecase.RouteState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}
