package domain

import (
	"context"
	"time"
)

// EventRepository persists events. Absent rows surface as apperr
// not-found errors.
type EventRepository interface {
	FindByID(ctx context.Context, id int64) (*Event, error)
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	List(ctx context.Context, from, to time.Time) ([]Event, error)
}
