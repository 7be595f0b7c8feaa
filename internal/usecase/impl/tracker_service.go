package impl

import (
	"log/slog"
	"sync"
	"time"

	"placebook/internal/domain/entity"
	domainerrors "placebook/internal/domain/errors"
	"placebook/internal/usecase"
)

// TrackerConfig carries the recentring policy knobs.
type TrackerConfig struct {
	RecenterDebounce        time.Duration
	RecenterThresholdMeters float64
	RegionSpanMeters        float64
}

type trackerService struct {
	cfg    TrackerConfig
	logger *slog.Logger

	mu             sync.Mutex
	auth           usecase.AuthorizationState
	reportedAuth   usecase.AuthorizationState
	requestPending bool
	current        *entity.Coordinate
	lastRecenter   *entity.Coordinate
	debounce       *time.Timer
	listeners      map[int]usecase.RegionListener
	nextListener   int
}

// NewTrackerService creates the location tracker with the given recentring
// policy.
func NewTrackerService(cfg TrackerConfig, logger *slog.Logger) usecase.LocationUsecase {
	return &trackerService{
		cfg:       cfg,
		logger:    logger,
		auth:      usecase.AuthorizationNotDetermined,
		listeners: make(map[int]usecase.RegionListener),
	}
}

// CheckAuthorization inspects the permission state. On NotDetermined it
// marks a permission request pending; on Denied or Restricted it surfaces a
// permission error once per state transition.
func (s *trackerService) CheckAuthorization() (usecase.AuthorizationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.auth, s.checkAuthorizationLocked()
}

// ReportAuthorization records a permission change and re-enters the
// authorization check.
func (s *trackerService) ReportAuthorization(state usecase.AuthorizationState) error {
	if !state.Valid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown authorization state")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if state != s.auth {
		s.logger.Info("location authorization changed",
			slog.String("from", string(s.auth)),
			slog.String("to", string(state)))
		s.auth = state
		// A fresh transition reports its error once; repeats stay silent.
		s.reportedAuth = ""
		s.requestPending = false
	}

	return s.checkAuthorizationLocked()
}

// checkAuthorizationLocked applies the permission state machine. Denied and
// restricted errors fire once per transition into the state.
func (s *trackerService) checkAuthorizationLocked() error {
	switch s.auth {
	case usecase.AuthorizationNotDetermined:
		if !s.requestPending {
			s.requestPending = true
			s.logger.Info("location permission request pending")
		}

		return nil
	case usecase.AuthorizationAuthorized:
		return nil
	case usecase.AuthorizationDenied:
		if s.reportedAuth == s.auth {
			return nil
		}
		s.reportedAuth = s.auth

		return domainerrors.ErrLocationDenied
	case usecase.AuthorizationRestricted:
		if s.reportedAuth == s.auth {
			return nil
		}
		s.reportedAuth = s.auth

		return domainerrors.ErrLocationRestricted
	}

	return nil
}

// ReportPosition records a device position fix and arms the debounced
// recentring evaluation. Fixes arriving while unauthorized are rejected.
func (s *trackerService) ReportPosition(coord entity.Coordinate) error {
	if !coord.Valid() {
		return domainerrors.ErrValidationFailed.WithDetails("coordinate out of range")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.auth != usecase.AuthorizationAuthorized {
		return s.checkAuthorizationLocked()
	}

	s.current = &coord

	// Rapid fixes collapse into one evaluation of the newest position.
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.cfg.RecenterDebounce, s.evaluateRecenter)

	return nil
}

// CurrentLocation returns the latest authorized position fix.
func (s *trackerService) CurrentLocation() (entity.Coordinate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return entity.Coordinate{}, domainerrors.ErrLocationUnavailable
	}

	return *s.current, nil
}

// SubscribeRegion registers a recentring listener.
func (s *trackerService) SubscribeRegion(listener usecase.RegionListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// evaluateRecenter fires after the debounce window. It recenters when the
// newest fix moved past the threshold from the last recenter point, or when
// no recenter has happened yet.
func (s *trackerService) evaluateRecenter() {
	s.mu.Lock()

	if s.current == nil {
		s.mu.Unlock()

		return
	}
	coord := *s.current

	if s.lastRecenter != nil &&
		coord.DistanceMeters(*s.lastRecenter) <= s.cfg.RecenterThresholdMeters {
		s.mu.Unlock()

		return
	}

	s.lastRecenter = &coord
	region := entity.RegionOfInterest{
		Center:     coord,
		SpanMeters: s.cfg.RegionSpanMeters,
	}

	listeners := make([]usecase.RegionListener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(region)
	}
}
