package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Musician struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	Name       string          `gorm:"size:100;not null"`
	Instrument string          `gorm:"size:60"`
	Phone      string          `gorm:"size:30"`
	Email      string          `gorm:"size:120"`
	DefaultFee decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Notes      string          `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Musician) TableName() string { return "musicians" }

// Assignment books a musician onto an event. One row per musician per
// event; re-booking updates the existing row.
type Assignment struct {
	ID         int64            `gorm:"primaryKey;autoIncrement"`
	EventID    int64            `gorm:"uniqueIndex:idx_event_musician;not null"`
	MusicianID int64            `gorm:"uniqueIndex:idx_event_musician;index;not null"`
	Status     AssignmentStatus `gorm:"type:varchar(12);not null;default:'PENDING'"`
	AgreedFee  decimal.Decimal  `gorm:"type:decimal(20,4);not null;default:0"`
	Notes      string           `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Assignment) TableName() string { return "assignments" }

// EventWindow is the booking-side view of an event's time span,
// half-open: [Start, End).
type EventWindow struct {
	EventID int64
	Title   string
	Start   time.Time
	End     time.Time
}

// Overlaps reports whether two half-open windows intersect. Windows
// that merely touch (one ends exactly when the other starts) do not
// overlap.
func (w EventWindow) Overlaps(other EventWindow) bool {
	return other.Start.Before(w.End) && other.End.After(w.Start)
}
