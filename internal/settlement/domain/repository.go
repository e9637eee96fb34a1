package domain

import "context"

// Ports implemented by the postgres adapter. Absent rows come back as
// apperr.NotFound so services never see gorm error values.

type PolicyRepository interface {
	FindByID(ctx context.Context, id int64) (*SplitPolicy, error)
	FindByName(ctx context.Context, name string) (*SplitPolicy, error)
	Create(ctx context.Context, policy *SplitPolicy) error
	List(ctx context.Context) ([]SplitPolicy, error)
}

type EventFinanceRepository interface {
	// LoadEventFinance fetches the event with its revenue items and
	// expenses in one logical read.
	LoadEventFinance(ctx context.Context, eventID int64) (*EventFinance, error)
}

type SettlementRepository interface {
	FindByEventID(ctx context.Context, eventID int64) (*Settlement, error)
	// Upsert creates or replaces the settlement row keyed by event id.
	// A locked row is never replaced; that is apperr.Conflict even when
	// the lock appeared after the caller last read the row.
	Upsert(ctx context.Context, s *Settlement) error
	SetLocked(ctx context.Context, eventID int64, locked bool) error
}

type RevenueRepository interface {
	Create(ctx context.Context, item *RevenueItem) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
}
