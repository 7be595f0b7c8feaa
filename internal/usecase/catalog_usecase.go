// Package usecase defines the application-facing interfaces of the place
// catalog engine. Implementations live in the impl subpackage.
package usecase

import (
	"context"

	"placebook/internal/domain/entity"

	"github.com/google/uuid"
)

// PlaceDraftInput carries all mutable place fields for create and update.
// Updates overwrite every field atomically; there is no partial merge.
type PlaceDraftInput struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Type      string `json:"type"`
	ImageData []byte `json:"image_data,omitempty"`
	Rating    int    `json:"rating"`
}

// ListInput selects ordering and filtering for a place listing.
type ListInput struct {
	SortBy    entity.SortField `json:"sort_by"`
	Ascending bool             `json:"ascending"`
	Filter    string           `json:"filter"`
}

// ChangeKind identifies the mutation behind a catalog change event.
type ChangeKind string

const (
	PlaceCreated ChangeKind = "created"
	PlaceUpdated ChangeKind = "updated"
	PlaceDeleted ChangeKind = "deleted"
)

// ChangeEvent is published after every committed catalog mutation, in
// commit order, to all subscribed listeners.
type ChangeEvent struct {
	Kind    ChangeKind
	PlaceID uuid.UUID
}

// ChangeListener receives catalog change events. Listeners run on the
// mutating goroutine, synchronously after commit; they must not mutate the
// catalog re-entrantly.
type ChangeListener func(ChangeEvent)

// CatalogUsecase is the single write path to the place collection plus its
// query surface. All mutations are transactional; a failed mutation leaves
// no partial state behind.
type CatalogUsecase interface {
	// CreatePlace validates the draft, assigns an ID and persists a new
	// place. Drafts with an empty name are rejected; ratings outside
	// [0,5] are clamped.
	CreatePlace(ctx context.Context, draft *PlaceDraftInput) (*entity.Place, error)

	// UpdatePlace overwrites all mutable fields of an existing place.
	UpdatePlace(ctx context.Context, id uuid.UUID, draft *PlaceDraftInput) (*entity.Place, error)

	// DeletePlace removes a place. Deleting an unknown ID fails cleanly
	// and leaves the collection untouched.
	DeletePlace(ctx context.Context, id uuid.UUID) error

	// GetPlace retrieves a single place by ID.
	GetPlace(ctx context.Context, id uuid.UUID) (*entity.Place, error)

	// ListPlaces retrieves a one-shot sorted/filtered listing.
	ListPlaces(ctx context.Context, input ListInput) ([]*entity.Place, error)

	// Subscribe registers a change listener and returns its detach func.
	Subscribe(listener ChangeListener) (unsubscribe func())

	// OpenView opens a live listing that re-derives itself on every
	// catalog mutation until closed.
	OpenView(ctx context.Context, input ListInput) (PlaceView, error)
}

// PlaceView is a live, derived, read-only projection of the catalog.
// It re-derives synchronously whenever the catalog mutates or its sort and
// filter parameters change; it never mutates the underlying collection.
type PlaceView interface {
	// Places returns the current derived snapshot.
	Places() []*entity.Place

	// SetSort changes the sort key and direction and re-derives once.
	SetSort(ctx context.Context, field entity.SortField, ascending bool) error

	// SetFilter changes the substring filter and re-derives once.
	// Empty text deactivates the filter.
	SetFilter(ctx context.Context, text string) error

	// Listen registers a callback invoked after each re-derivation.
	Listen(fn func()) (unsubscribe func())

	// Close detaches the view from the catalog. A closed view keeps its
	// last snapshot but no longer updates.
	Close()
}
