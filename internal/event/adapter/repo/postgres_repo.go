package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/showbooks/backend/internal/event/domain"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event %d not found", id)
		}
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	res := r.db.WithContext(ctx).Model(e).Select("*").Omit("id", "created_at").Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("event %d not found", e.ID)
	}
	return nil
}

func (r *EventRepo) List(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	q := r.db.WithContext(ctx)
	if !from.IsZero() {
		q = q.Where("start_time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("start_time < ?", to)
	}
	var events []domain.Event
	err := q.Order("start_time").Find(&events).Error
	return events, err
}
