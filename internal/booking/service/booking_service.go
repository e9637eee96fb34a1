package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/showbooks/backend/internal/booking/domain"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type Service struct {
	musicians   domain.MusicianRepository
	assignments domain.AssignmentRepository
	windows     domain.EventWindowRepository
	serializer  domain.Serializer
	log         *zap.Logger
}

func NewService(
	musicians domain.MusicianRepository,
	assignments domain.AssignmentRepository,
	windows domain.EventWindowRepository,
	serializer domain.Serializer,
	log *zap.Logger,
) *Service {
	return &Service{
		musicians:   musicians,
		assignments: assignments,
		windows:     windows,
		serializer:  serializer,
		log:         log,
	}
}

// ConflictingEvents returns the windows of the musician's ACCEPTED
// bookings that overlap the candidate window, skipping the candidate's
// own event and assignment.
func (s *Service) ConflictingEvents(ctx context.Context, musicianID int64, candidate domain.EventWindow, excludeAssignmentID int64) ([]domain.EventWindow, error) {
	windows, err := s.assignments.AcceptedWindows(ctx, musicianID, candidate.EventID, excludeAssignmentID)
	if err != nil {
		return nil, err
	}
	var conflicts []domain.EventWindow
	for _, w := range windows {
		if candidate.Overlaps(w) {
			conflicts = append(conflicts, w)
		}
	}
	return conflicts, nil
}

// HasConflict reports whether accepting the candidate booking would
// double-book the musician.
func (s *Service) HasConflict(ctx context.Context, musicianID int64, candidate domain.EventWindow, excludeAssignmentID int64) (bool, error) {
	conflicts, err := s.ConflictingEvents(ctx, musicianID, candidate, excludeAssignmentID)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// CreateOrUpdateAssignment books the musician onto the event, or updates
// the existing booking. Moving to ACCEPTED runs the double-booking check
// under the musician's serialization lock; the check, the decision and
// the write happen as one unit.
func (s *Service) CreateOrUpdateAssignment(ctx context.Context, a *domain.Assignment) error {
	if a.EventID <= 0 || a.MusicianID <= 0 {
		return apperr.Validation("assignment requires an event and a musician")
	}
	if a.Status == "" {
		a.Status = domain.StatusPending
	}
	if !a.Status.IsValid() {
		return apperr.Validation("invalid assignment status: %s", a.Status)
	}
	if a.AgreedFee.IsNegative() {
		return apperr.Validation("agreed fee must not be negative")
	}
	if _, err := s.musicians.FindByID(ctx, a.MusicianID); err != nil {
		return err
	}
	window, err := s.windows.WindowOf(ctx, a.EventID)
	if err != nil {
		return err
	}

	return s.serializer.WithMusicianLock(ctx, a.MusicianID, func(ctx context.Context) error {
		existing, err := s.assignments.FindByEventAndMusician(ctx, a.EventID, a.MusicianID)
		switch {
		case err == nil:
			a.ID = existing.ID
			a.CreatedAt = existing.CreatedAt
		case apperr.IsNotFound(err):
			// first booking for this pair
		default:
			return err
		}

		if a.Status == domain.StatusAccepted {
			conflicts, err := s.ConflictingEvents(ctx, a.MusicianID, *window, a.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				titles := make([]string, len(conflicts))
				for i, c := range conflicts {
					titles[i] = c.Title
				}
				return apperr.Conflict("musician already booked for overlapping event(s): %s", strings.Join(titles, ", "))
			}
		}

		if err := s.assignments.Save(ctx, a); err != nil {
			return err
		}
		s.log.Info("assignment saved",
			zap.Int64("event_id", a.EventID),
			zap.Int64("musician_id", a.MusicianID),
			zap.String("status", string(a.Status)))
		return nil
	})
}

func (s *Service) DeleteAssignment(ctx context.Context, id int64) error {
	if _, err := s.assignments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.assignments.Delete(ctx, id)
}

func (s *Service) ListAssignments(ctx context.Context, eventID int64) ([]domain.Assignment, error) {
	return s.assignments.ListByEvent(ctx, eventID)
}

func (s *Service) CreateMusician(ctx context.Context, m *domain.Musician) error {
	if m.Name == "" {
		return apperr.Validation("musician name is required")
	}
	if m.DefaultFee.IsNegative() {
		return apperr.Validation("default fee must not be negative")
	}
	return s.musicians.Create(ctx, m)
}

func (s *Service) ListMusicians(ctx context.Context) ([]domain.Musician, error) {
	return s.musicians.List(ctx)
}
