package domain

import "context"

type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, account *Account) error
	ListActive(ctx context.Context) ([]Account, error)
	// Balances aggregates opening + IN − OUT per active account in a
	// single statement, so the result is one consistent snapshot.
	Balances(ctx context.Context) ([]AccountBalance, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	// CreatePair inserts both legs of a transfer atomically: either both
	// become visible or neither does.
	CreatePair(ctx context.Context, out, in *Transaction) error
	ListRecent(ctx context.Context, limit int) ([]Transaction, error)
}

// SourceRepository looks across module boundaries at revenue/expense rows
// so auto-posting can describe what it posts.
type SourceRepository interface {
	RevenueSource(ctx context.Context, revenueID int64) (*RevenueSource, error)
	ExpenseSource(ctx context.Context, expenseID int64) (*ExpenseSource, error)
}
