// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"placebook/internal/domain/entity"
	"placebook/internal/errors"

	"github.com/google/uuid"
)

// ErrPlaceNotFound is returned when a place is not found.
var ErrPlaceNotFound = errors.New("place not found")

// ListOptions controls ordering and filtering of a place listing.
type ListOptions struct {
	// SortBy orders the listing by one place field. Zero value means the
	// store's natural insertion order.
	SortBy entity.SortField

	// Ascending selects the sort direction. Ignored when SortBy is unset.
	Ascending bool

	// Filter is a case-insensitive substring matched against name OR
	// location. Empty means the filter is inactive.
	Filter string
}

// PlaceRepository defines the interface for place-related database operations.
// Sorting must be stable: records with equal sort keys keep insertion order.
type PlaceRepository interface {
	// CreatePlace persists a new place record.
	CreatePlace(ctx context.Context, place *entity.Place) error

	// FindPlaceByID retrieves a place by its unique ID.
	// Returns ErrPlaceNotFound if no such record exists.
	FindPlaceByID(ctx context.Context, id uuid.UUID) (*entity.Place, error)

	// ListPlaces retrieves places ordered and filtered per opts.
	ListPlaces(ctx context.Context, opts ListOptions) ([]*entity.Place, error)

	// UpdatePlace overwrites all mutable fields of an existing record.
	// Returns ErrPlaceNotFound if no such record exists.
	UpdatePlace(ctx context.Context, place *entity.Place) error

	// DeletePlace removes a place by its ID.
	// Returns ErrPlaceNotFound if no such record exists.
	DeletePlace(ctx context.Context, id uuid.UUID) error

	// CountPlaces returns the total number of catalog records.
	CountPlaces(ctx context.Context) (int64, error)
}
