package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitPolicy is a named rule set for dividing an event's net revenue.
// Immutable once referenced by a locked settlement (enforced by the lock
// on the settlement side, not by versioning here).
type SplitPolicy struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Name          string          `gorm:"uniqueIndex;size:100;not null"`
	Variant       SplitVariant    `gorm:"type:varchar(12);not null"`
	PartnerAShare decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PartnerBShare decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	MinFundFloor  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SplitPolicy) TableName() string { return "split_policies" }

// RevenueItem is append-only: there is no update path once recorded.
type RevenueItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement"`
	EventID             int64           `gorm:"index;not null"`
	Kind                string          `gorm:"size:32;not null"`
	Amount              decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Currency            string          `gorm:"type:char(3);not null;default:'ILS'"`
	Method              string          `gorm:"size:32;not null"`
	Reference           string          `gorm:"size:100"`
	ReceivedInAccountID *int64          `gorm:"index"`
	OccurredOn          time.Time       `gorm:"not null"`
	CreatedAt           time.Time
}

func (RevenueItem) TableName() string { return "revenue_items" }

type Expense struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	EventID            int64           `gorm:"index;not null"`
	Category           string          `gorm:"size:64;not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Currency           string          `gorm:"type:char(3);not null;default:'ILS'"`
	VendorID           *int64          `gorm:"index"`
	VendorName         string          `gorm:"size:100"` // free text, wins over the linked record
	MusicianID         *int64          `gorm:"index"`
	MusicianName       string          `gorm:"size:100"`
	PaidFromAccountID  *int64          `gorm:"index"`
	Notes              string          `gorm:"type:text"`
	OccurredOn         time.Time       `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Expense) TableName() string { return "expenses" }

type Vendor struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"index;size:100;not null"`
	Type      string `gorm:"size:32"`
	Contact   string `gorm:"size:100"`
	Email     string `gorm:"size:100"`
	Phone     string `gorm:"size:32"`
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vendor) TableName() string { return "vendors" }

// Settlement is the persisted reconciliation of one event, 1:1 by event id.
// Once Locked it must not be recomputed in place; unlock is an explicit,
// separate operation.
type Settlement struct {
	ID                       int64           `gorm:"primaryKey;autoIncrement"`
	EventID                  int64           `gorm:"uniqueIndex;not null"`
	GrossRevenue             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	DirectCosts              decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	ProcessingFees           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	NetRevenue               decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PartnerADraw             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PartnerBDraw             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BusinessFundContribution decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Locked                   bool            `gorm:"not null;default:false"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (Settlement) TableName() string { return "settlements" }

// EventFinance is the settlement-side view of an event: just the fields
// the calculator needs, loaded in one shot by the adapter.
type EventFinance struct {
	EventID        int64
	Title          string
	ProcessingFees decimal.Decimal
	SplitPolicyID  *int64
	RevenueItems   []RevenueItem
	Expenses       []Expense
}
