package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/showbooks/backend/internal/platform/apperr"
	"github.com/showbooks/backend/internal/treasury/domain"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("treasury account %d not found", id)
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *AccountRepo) ListActive(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("display_name").Find(&accounts).Error
	return accounts, err
}

// Balances derives every balance in one statement. A single query sees a
// single snapshot, so a half-visible transfer can never skew the sums.
func (r *AccountRepo) Balances(ctx context.Context) ([]domain.AccountBalance, error) {
	var balances []domain.AccountBalance
	err := r.db.WithContext(ctx).
		Table("treasury_accounts AS a").
		Select(`a.id AS account_id, a.display_name, a.role, a.currency,
			a.opening_balance + COALESCE(SUM(CASE WHEN t.direction = 'IN' THEN t.amount ELSE -t.amount END), 0) AS balance`).
		Joins("LEFT JOIN treasury_transactions t ON t.account_id = a.id").
		Where("a.active = ?", true).
		Group("a.id, a.display_name, a.role, a.currency, a.opening_balance").
		Order("a.display_name").
		Scan(&balances).Error
	return balances, err
}

// ---------------------------------------------------------

type TransactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// CreatePair commits both transfer legs inside one storage transaction.
func (r *TransactionRepo) CreatePair(ctx context.Context, out, in *domain.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(out).Error; err != nil {
			return err
		}
		return tx.Create(in).Error
	})
}

func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// ---------------------------------------------------------

// SourceRepo reads revenue/expense rows owned by the settlement module,
// joined with their event and linked counterparty records.
type SourceRepo struct {
	db *gorm.DB
}

func NewSourceRepo(db *gorm.DB) *SourceRepo { return &SourceRepo{db: db} }

func (r *SourceRepo) RevenueSource(ctx context.Context, revenueID int64) (*domain.RevenueSource, error) {
	var src domain.RevenueSource
	err := r.db.WithContext(ctx).
		Table("revenue_items AS ri").
		Select(`ri.id AS revenue_id, ri.event_id, ri.received_in_account_id AS account_id,
			ri.amount, ri.currency, ri.method, e.title AS event_title, e.client_name`).
		Joins("JOIN events e ON e.id = ri.event_id").
		Where("ri.id = ?", revenueID).
		Take(&src).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("revenue item %d not found", revenueID)
		}
		return nil, err
	}
	return &src, nil
}

func (r *SourceRepo) ExpenseSource(ctx context.Context, expenseID int64) (*domain.ExpenseSource, error) {
	var src domain.ExpenseSource
	err := r.db.WithContext(ctx).
		Table("expenses AS x").
		Select(`x.id AS expense_id, x.event_id, x.paid_from_account_id AS account_id,
			x.amount, x.currency, x.vendor_id, x.musician_id,
			x.vendor_name AS vendor_free_name, x.musician_name AS musician_free_name,
			COALESCE(v.name, '') AS vendor_record_name, COALESCE(m.name, '') AS musician_record_name,
			e.title AS event_title`).
		Joins("JOIN events e ON e.id = x.event_id").
		Joins("LEFT JOIN vendors v ON v.id = x.vendor_id").
		Joins("LEFT JOIN musicians m ON m.id = x.musician_id").
		Where("x.id = ?", expenseID).
		Take(&src).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("expense %d not found", expenseID)
		}
		return nil, err
	}
	return &src, nil
}
