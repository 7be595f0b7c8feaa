package model

import (
	"time"

	"github.com/google/uuid"
)

// PlaceModel is the GORM-specific struct for the 'places' table.
// Seq carries the insertion order used as the stable-sort tie break.
type PlaceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex:idx_places_on_seq;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Location  string    `gorm:"type:text;not null;default:''"`
	Type      string    `gorm:"type:varchar(100);not null;default:''"`
	ImageData []byte    `gorm:"type:bytea"`
	Rating    int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PlaceModel) TableName() string {
	return "places"
}
