// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for a place. Drafts outside the range are clamped at the
// store boundary rather than rejected.
const (
	RatingMin = 0
	RatingMax = 5
)

// Place is the core entity of the catalog: a user-saved point of interest.
type Place struct {
	ID        uuid.UUID // Stable unique identifier, assigned at creation.
	Name      string    // Display name; never empty once persisted.
	Location  string    // Free-text address; may be empty. Coordinates are never persisted here.
	Type      string    // Free-text category, e.g. "cafe", "museum"; may be empty.
	ImageData []byte    // Opaque photo blob; may be nil.
	Rating    int       // Star rating in [RatingMin, RatingMax].
	CreatedAt time.Time // Timestamp of creation; also the insertion-order tie break for sorting.
	UpdatedAt time.Time // Timestamp of the last full-field overwrite.
}

// PlaceDraft carries the mutable fields of a place for create and update
// operations. Updates overwrite all fields atomically; there is no merge.
type PlaceDraft struct {
	Name      string
	Location  string
	Type      string
	ImageData []byte
	Rating    int
}

// ClampRating returns the rating forced into the valid range.
func ClampRating(rating int) int {
	if rating < RatingMin {
		return RatingMin
	}
	if rating > RatingMax {
		return RatingMax
	}

	return rating
}

// SortField enumerates the place fields a listing can be ordered by.
type SortField string

const (
	SortByName     SortField = "name"
	SortByLocation SortField = "location"
	SortByType     SortField = "type"
	SortByRating   SortField = "rating"
)

// Valid reports whether the sort field is one of the supported columns.
func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByLocation, SortByType, SortByRating:
		return true
	}

	return false
}
