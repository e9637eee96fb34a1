package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a named money pool. Its balance is never stored; it is
// always derived from the opening balance and the transaction history.
type Account struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	DisplayName    string          `gorm:"uniqueIndex;size:100;not null"`
	Role           AccountRole     `gorm:"type:varchar(16);not null"`
	OwnerPartner   string          `gorm:"size:100"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Currency       string          `gorm:"type:char(3);not null;default:'ILS'"`
	Active         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Account) TableName() string { return "treasury_accounts" }

// Transaction is one leg of a money movement. Rows are append-only:
// never updated, never deleted. Paired legs (a transfer) share a
// JournalGroupID. Link columns are weak references for lookup only.
type Transaction struct {
	ID               int64            `gorm:"primaryKey;autoIncrement"`
	AccountID        int64            `gorm:"index;not null"`
	Direction        Direction        `gorm:"type:varchar(3);not null"`
	Amount           decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	Currency         string           `gorm:"type:char(3);not null;default:'ILS'"`
	Method           PaymentMethod    `gorm:"type:varchar(16);not null"`
	CounterpartyType CounterpartyType `gorm:"type:varchar(16);not null"`
	CounterpartyName string           `gorm:"size:100;not null"`
	Notes            string           `gorm:"type:text"`
	JournalGroupID   *string          `gorm:"type:uuid;index"`
	LinkEventID      *int64           `gorm:"index"`
	LinkExpenseID    *int64           `gorm:"index"`
	LinkRevenueID    *int64           `gorm:"index"`
	LinkSettlementID *int64           `gorm:"index"`
	OccurredAt       time.Time        `gorm:"index;not null"`
	PeriodKey        string           `gorm:"type:char(7);index;not null"` // YYYY-MM
	CreatedAt        time.Time
}

func (Transaction) TableName() string { return "treasury_transactions" }

// AccountBalance is the derived read model:
// balance = opening + sum(IN) - sum(OUT).
type AccountBalance struct {
	AccountID   int64           `json:"account_id"`
	DisplayName string          `json:"display_name"`
	Role        AccountRole     `json:"role"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency"`
}

// RevenueSource and ExpenseSource are the treasury-side views of rows
// owned by the settlement module, loaded by the adapter with joins.
type RevenueSource struct {
	RevenueID  int64
	EventID    int64
	EventTitle string
	ClientName string
	AccountID  *int64
	Amount     decimal.Decimal
	Currency   string
	Method     string
}

type ExpenseSource struct {
	ExpenseID          int64
	EventID            int64
	EventTitle         string
	AccountID          *int64
	Amount             decimal.Decimal
	Currency           string
	VendorID           *int64
	MusicianID         *int64
	VendorFreeName     string
	MusicianFreeName   string
	VendorRecordName   string
	MusicianRecordName string
}

// Counterparty resolves the expense payee with the documented fallback
// chain: free-text names win over linked records; "unknown payee" when
// nothing is present. A chain, not a merge.
func (e ExpenseSource) Counterparty() (CounterpartyType, string) {
	name := e.VendorFreeName
	if name == "" {
		name = e.MusicianFreeName
	}
	if name == "" {
		name = e.VendorRecordName
	}
	if name == "" {
		name = e.MusicianRecordName
	}
	if name == "" {
		name = "unknown payee"
	}

	switch {
	case e.VendorID != nil:
		return CounterpartyVendor, name
	case e.MusicianID != nil:
		return CounterpartyMusician, name
	default:
		return CounterpartyOther, name
	}
}
