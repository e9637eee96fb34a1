package repo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/showbooks/backend/internal/platform/apperr"
	"github.com/showbooks/backend/internal/settlement/domain"
)

type PolicyRepo struct {
	db *gorm.DB
}

func NewPolicyRepo(db *gorm.DB) *PolicyRepo { return &PolicyRepo{db: db} }

func (r *PolicyRepo) FindByID(ctx context.Context, id int64) (*domain.SplitPolicy, error) {
	var policy domain.SplitPolicy
	if err := r.db.WithContext(ctx).First(&policy, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("split policy %d not found", id)
		}
		return nil, err
	}
	return &policy, nil
}

func (r *PolicyRepo) FindByName(ctx context.Context, name string) (*domain.SplitPolicy, error) {
	var policy domain.SplitPolicy
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("split policy %q not found", name)
		}
		return nil, err
	}
	return &policy, nil
}

func (r *PolicyRepo) Create(ctx context.Context, policy *domain.SplitPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *PolicyRepo) List(ctx context.Context) ([]domain.SplitPolicy, error) {
	var policies []domain.SplitPolicy
	err := r.db.WithContext(ctx).Order("name").Find(&policies).Error
	return policies, err
}

// ---------------------------------------------------------

type EventFinanceRepo struct {
	db *gorm.DB
}

func NewEventFinanceRepo(db *gorm.DB) *EventFinanceRepo { return &EventFinanceRepo{db: db} }

// LoadEventFinance reads the header slice of the events table directly;
// the full event model belongs to the event module.
func (r *EventFinanceRepo) LoadEventFinance(ctx context.Context, eventID int64) (*domain.EventFinance, error) {
	var header struct {
		ID             int64
		Title          string
		ProcessingFees decimal.Decimal
		SplitPolicyID  *int64
	}
	err := r.db.WithContext(ctx).Table("events").
		Select("id, title, processing_fees, split_policy_id").
		Where("id = ?", eventID).
		Take(&header).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event %d not found", eventID)
		}
		return nil, err
	}

	fin := &domain.EventFinance{
		EventID:        header.ID,
		Title:          header.Title,
		ProcessingFees: header.ProcessingFees,
		SplitPolicyID:  header.SplitPolicyID,
	}

	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&fin.RevenueItems).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&fin.Expenses).Error; err != nil {
		return nil, err
	}
	return fin, nil
}

// ---------------------------------------------------------

type SettlementRepo struct {
	db *gorm.DB
}

func NewSettlementRepo(db *gorm.DB) *SettlementRepo { return &SettlementRepo{db: db} }

func (r *SettlementRepo) FindByEventID(ctx context.Context, eventID int64) (*domain.Settlement, error) {
	var s domain.Settlement
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("settlement for event %d not found", eventID)
		}
		return nil, err
	}
	return &s, nil
}

// Upsert keys on event_id; replaced rows keep their primary key. The
// DO UPDATE carries a locked = false guard so a lock landing between the
// service's read and this write still cannot be overwritten.
func (r *SettlementRepo) Upsert(ctx context.Context, s *domain.Settlement) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"gross_revenue", "direct_costs", "processing_fees", "net_revenue",
			"partner_a_draw", "partner_b_draw", "business_fund_contribution", "updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "settlements", Name: "locked"}, Value: false},
		}},
	}).Create(s)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.Conflict("settlement for event %d is locked", s.EventID)
	}
	return nil
}

func (r *SettlementRepo) SetLocked(ctx context.Context, eventID int64, locked bool) error {
	result := r.db.WithContext(ctx).Model(&domain.Settlement{}).
		Where("event_id = ?", eventID).
		Update("locked", locked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("settlement for event %d not found", eventID)
	}
	return nil
}

// ---------------------------------------------------------

type RevenueRepo struct {
	db *gorm.DB
}

func NewRevenueRepo(db *gorm.DB) *RevenueRepo { return &RevenueRepo{db: db} }

func (r *RevenueRepo) Create(ctx context.Context, item *domain.RevenueItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

type ExpenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) *ExpenseRepo { return &ExpenseRepo{db: db} }

func (r *ExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}
