package domain

import "context"

// MusicianRepository persists musician records. Absent rows surface as
// apperr not-found errors.
type MusicianRepository interface {
	FindByID(ctx context.Context, id int64) (*Musician, error)
	Create(ctx context.Context, m *Musician) error
	List(ctx context.Context) ([]Musician, error)
}

// AssignmentRepository persists bookings. AcceptedWindows returns the
// event windows of every ACCEPTED assignment for the musician, skipping
// the given event and assignment ids (0 means no exclusion).
type AssignmentRepository interface {
	FindByID(ctx context.Context, id int64) (*Assignment, error)
	FindByEventAndMusician(ctx context.Context, eventID, musicianID int64) (*Assignment, error)
	Save(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id int64) error
	ListByEvent(ctx context.Context, eventID int64) ([]Assignment, error)
	AcceptedWindows(ctx context.Context, musicianID, excludeEventID, excludeAssignmentID int64) ([]EventWindow, error)
}

// EventWindowRepository reads event time spans owned by the event module.
type EventWindowRepository interface {
	WindowOf(ctx context.Context, eventID int64) (*EventWindow, error)
}

// Serializer runs fn while holding a per-musician exclusive lock, so
// two concurrent bookings for the same musician cannot both pass the
// conflict check.
type Serializer interface {
	WithMusicianLock(ctx context.Context, musicianID int64, fn func(ctx context.Context) error) error
}
