package usecase

import "placebook/internal/domain/entity"

// AuthorizationState models the device location permission.
type AuthorizationState string

const (
	AuthorizationNotDetermined AuthorizationState = "not_determined"
	AuthorizationAuthorized    AuthorizationState = "authorized"
	AuthorizationDenied        AuthorizationState = "denied"
	AuthorizationRestricted    AuthorizationState = "restricted"
)

// Valid reports whether the state is one of the known permission states.
func (s AuthorizationState) Valid() bool {
	switch s {
	case AuthorizationNotDetermined, AuthorizationAuthorized,
		AuthorizationDenied, AuthorizationRestricted:
		return true
	}

	return false
}

// RegionListener receives the recomputed region of interest after a
// recentring fires.
type RegionListener func(entity.RegionOfInterest)

// LocationUsecase tracks the device permission state machine and the
// ambient position feed, and applies the debounced recentring policy.
// Position and authorization changes arrive from the client, which relays
// the OS location callbacks.
type LocationUsecase interface {
	// CheckAuthorization inspects the permission state. On NotDetermined
	// it marks a permission request pending (the outcome arrives via
	// ReportAuthorization); on Denied or Restricted it returns a
	// permission error once per state transition; on Authorized it
	// returns nil.
	CheckAuthorization() (AuthorizationState, error)

	// ReportAuthorization records a permission change and re-enters the
	// authorization check.
	ReportAuthorization(state AuthorizationState) error

	// ReportPosition records a device position fix and arms the
	// debounced recentring evaluation.
	ReportPosition(coord entity.Coordinate) error

	// CurrentLocation returns the latest authorized position fix.
	CurrentLocation() (entity.Coordinate, error)

	// SubscribeRegion registers a recentring listener.
	SubscribeRegion(listener RegionListener) (unsubscribe func())
}
