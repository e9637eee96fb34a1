package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	StatusInquiry   EventStatus = "INQUIRY"
	StatusBooked    EventStatus = "BOOKED"
	StatusCompleted EventStatus = "COMPLETED"
	StatusCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case StatusInquiry, StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Event is a production: a wedding, a corporate gig, a show. Its time
// span is half-open, [StartTime, EndTime).
type Event struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	Title          string          `gorm:"size:200;not null"`
	ClientName     string          `gorm:"size:100;not null"`
	ClientPhone    string          `gorm:"size:30"`
	ClientEmail    string          `gorm:"size:120"`
	Venue          string          `gorm:"size:200"`
	StartTime      time.Time       `gorm:"index;not null"`
	EndTime        time.Time       `gorm:"not null"`
	Status         EventStatus     `gorm:"type:varchar(12);not null;default:'INQUIRY'"`
	ProcessingFees decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	SplitPolicyID  *int64          `gorm:"index"`
	TechNotes      string          `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Event) TableName() string { return "events" }
