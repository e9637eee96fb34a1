package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/showbooks/backend/internal/booking/domain"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type txKey struct{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn returns the transaction carried in ctx by the serializer, or the
// plain handle. Repositories called under WithMusicianLock this way see
// the locked transaction without any signature change.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// Locker serializes bookings per musician with a Postgres advisory
// lock. The lock is transaction-scoped, so it releases on commit or
// rollback even if the process dies mid-flight.
type Locker struct {
	db *gorm.DB
}

func NewLocker(db *gorm.DB) *Locker { return &Locker{db: db} }

func (l *Locker) WithMusicianLock(ctx context.Context, musicianID int64, fn func(ctx context.Context) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", musicianID).Error; err != nil {
			return err
		}
		return fn(withTx(ctx, tx))
	})
}

// ---------------------------------------------------------

type MusicianRepo struct {
	db *gorm.DB
}

func NewMusicianRepo(db *gorm.DB) *MusicianRepo { return &MusicianRepo{db: db} }

func (r *MusicianRepo) FindByID(ctx context.Context, id int64) (*domain.Musician, error) {
	var m domain.Musician
	if err := conn(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("musician %d not found", id)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MusicianRepo) Create(ctx context.Context, m *domain.Musician) error {
	return conn(ctx, r.db).Create(m).Error
}

func (r *MusicianRepo) List(ctx context.Context) ([]domain.Musician, error) {
	var musicians []domain.Musician
	err := conn(ctx, r.db).Order("name").Find(&musicians).Error
	return musicians, err
}

// ---------------------------------------------------------

type AssignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

func (r *AssignmentRepo) FindByID(ctx context.Context, id int64) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := conn(ctx, r.db).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assignment %d not found", id)
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepo) FindByEventAndMusician(ctx context.Context, eventID, musicianID int64) (*domain.Assignment, error) {
	var a domain.Assignment
	err := conn(ctx, r.db).
		Where("event_id = ? AND musician_id = ?", eventID, musicianID).
		Take(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no assignment for event %d and musician %d", eventID, musicianID)
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepo) Save(ctx context.Context, a *domain.Assignment) error {
	return conn(ctx, r.db).Save(a).Error
}

func (r *AssignmentRepo) Delete(ctx context.Context, id int64) error {
	res := conn(ctx, r.db).Delete(&domain.Assignment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("assignment %d not found", id)
	}
	return nil
}

func (r *AssignmentRepo) ListByEvent(ctx context.Context, eventID int64) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := conn(ctx, r.db).
		Where("event_id = ?", eventID).
		Order("id").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepo) AcceptedWindows(ctx context.Context, musicianID, excludeEventID, excludeAssignmentID int64) ([]domain.EventWindow, error) {
	q := conn(ctx, r.db).
		Table("assignments AS a").
		Select("e.id AS event_id, e.title, e.start_time AS start, e.end_time AS \"end\"").
		Joins("JOIN events e ON e.id = a.event_id").
		Where("a.musician_id = ? AND a.status = ?", musicianID, domain.StatusAccepted)
	if excludeEventID > 0 {
		q = q.Where("a.event_id <> ?", excludeEventID)
	}
	if excludeAssignmentID > 0 {
		q = q.Where("a.id <> ?", excludeAssignmentID)
	}
	var windows []domain.EventWindow
	err := q.Order("e.start_time").Scan(&windows).Error
	return windows, err
}

// ---------------------------------------------------------

// EventWindowRepo reads event time spans owned by the event module.
type EventWindowRepo struct {
	db *gorm.DB
}

func NewEventWindowRepo(db *gorm.DB) *EventWindowRepo { return &EventWindowRepo{db: db} }

func (r *EventWindowRepo) WindowOf(ctx context.Context, eventID int64) (*domain.EventWindow, error) {
	var w domain.EventWindow
	err := conn(ctx, r.db).
		Table("events").
		Select("id AS event_id, title, start_time AS start, end_time AS \"end\"").
		Where("id = ?", eventID).
		Take(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event %d not found", eventID)
		}
		return nil, err
	}
	return &w, nil
}
