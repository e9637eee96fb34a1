package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/showbooks/backend/internal/event/domain"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type Service struct {
	events domain.EventRepository
	log    *zap.Logger
}

func NewService(events domain.EventRepository, log *zap.Logger) *Service {
	return &Service{events: events, log: log}
}

func validate(e *domain.Event) error {
	if e.Title == "" {
		return apperr.Validation("event title is required")
	}
	if e.ClientName == "" {
		return apperr.Validation("client name is required")
	}
	if !e.StartTime.Before(e.EndTime) {
		return apperr.Validation("event must start before it ends")
	}
	if e.ProcessingFees.IsNegative() {
		return apperr.Validation("processing fees must not be negative")
	}
	if !e.Status.IsValid() {
		return apperr.Validation("invalid event status: %s", e.Status)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, e *domain.Event) error {
	if e.Status == "" {
		e.Status = domain.StatusInquiry
	}
	if err := validate(e); err != nil {
		return err
	}
	if err := s.events.Create(ctx, e); err != nil {
		return err
	}
	s.log.Info("event created",
		zap.Int64("event_id", e.ID),
		zap.String("title", e.Title),
		zap.Time("start", e.StartTime))
	return nil
}

func (s *Service) Update(ctx context.Context, e *domain.Event) error {
	current, err := s.events.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}
	e.CreatedAt = current.CreatedAt
	if err := validate(e); err != nil {
		return err
	}
	return s.events.Update(ctx, e)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

// List returns events ordered by start time. Zero bounds mean no bound
// on that side.
func (s *Service) List(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, apperr.Validation("time range is inverted")
	}
	return s.events.List(ctx, from, to)
}
