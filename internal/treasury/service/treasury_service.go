package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/showbooks/backend/internal/platform/apperr"
	"github.com/showbooks/backend/internal/treasury/domain"
)

type Config struct {
	DefaultCurrency string
}

type Service struct {
	cfg          Config
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
	sources      domain.SourceRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	cfg Config,
	accounts domain.AccountRepository,
	transactions domain.TransactionRepository,
	sources domain.SourceRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		cfg:          cfg,
		accounts:     accounts,
		transactions: transactions,
		sources:      sources,
		logger:       logger,
		now:          time.Now,
	}
}

func periodKey(t time.Time) string { return t.Format("2006-01") }

func (s *Service) Balances(ctx context.Context) ([]domain.AccountBalance, error) {
	return s.accounts.Balances(ctx)
}

// PartnerHoldings sums balances over accounts whose role is
// PARTNER_WALLET. Role equality, not name matching.
func (s *Service) PartnerHoldings(ctx context.Context) (decimal.Decimal, error) {
	balances, err := s.accounts.Balances(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total := decimal.Zero
	for _, b := range balances {
		if b.Role == domain.RolePartnerWallet {
			total = total.Add(b.Balance)
		}
	}
	return total, nil
}

// Transfer moves money between two accounts as a pair of legs sharing one
// journal group id and timestamp. Not idempotent: a duplicate submission
// moves the money again, callers dedupe.
func (s *Service) Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, notes string) (string, error) {
	if !amount.IsPositive() {
		return "", apperr.Validation("transfer amount must be positive")
	}
	if fromAccountID == toAccountID {
		return "", apperr.Validation("cannot transfer between the same account")
	}

	from, err := s.accounts.FindByID(ctx, fromAccountID)
	if err != nil {
		return "", err
	}
	to, err := s.accounts.FindByID(ctx, toAccountID)
	if err != nil {
		return "", err
	}

	journalGroupID := uuid.NewString()
	now := s.now()

	out := &domain.Transaction{
		AccountID:        from.ID,
		Direction:        domain.Out,
		Amount:           amount,
		Currency:         s.cfg.DefaultCurrency,
		Method:           domain.MethodBankTransfer,
		CounterpartyType: domain.CounterpartyOther,
		CounterpartyName: to.DisplayName,
		Notes:            notes,
		JournalGroupID:   &journalGroupID,
		OccurredAt:       now,
		PeriodKey:        periodKey(now),
	}
	in := &domain.Transaction{
		AccountID:        to.ID,
		Direction:        domain.In,
		Amount:           amount,
		Currency:         s.cfg.DefaultCurrency,
		Method:           domain.MethodBankTransfer,
		CounterpartyType: domain.CounterpartyOther,
		CounterpartyName: from.DisplayName,
		Notes:            notes,
		JournalGroupID:   &journalGroupID,
		OccurredAt:       now,
		PeriodKey:        periodKey(now),
	}

	if err := s.transactions.CreatePair(ctx, out, in); err != nil {
		return "", err
	}

	s.logger.Info("transfer posted",
		zap.Int64("from", from.ID),
		zap.Int64("to", to.ID),
		zap.String("amount", amount.String()),
		zap.String("journal_group_id", journalGroupID))
	return journalGroupID, nil
}

// PostRevenue writes the IN leg for a revenue item that names a
// receiving account. No-op when none is named.
func (s *Service) PostRevenue(ctx context.Context, revenueID int64) error {
	src, err := s.sources.RevenueSource(ctx, revenueID)
	if err != nil {
		return err
	}
	if src.AccountID == nil {
		return nil
	}

	// revenue_items.method is free text; anything outside the enum
	// lands as OTHER.
	method := domain.PaymentMethod(src.Method)
	if !method.IsValid() {
		method = domain.MethodOther
	}

	now := s.now()
	tx := &domain.Transaction{
		AccountID:        *src.AccountID,
		Direction:        domain.In,
		Amount:           src.Amount,
		Currency:         src.Currency,
		Method:           method,
		CounterpartyType: domain.CounterpartyClient,
		CounterpartyName: src.ClientName,
		Notes:            "income from event: " + src.EventTitle,
		LinkEventID:      &src.EventID,
		LinkRevenueID:    &src.RevenueID,
		OccurredAt:       now,
		PeriodKey:        periodKey(now),
	}
	return s.transactions.Create(ctx, tx)
}

// PostExpense writes the OUT leg for an expense that names a paying
// account, resolving the counterparty with the fallback chain.
func (s *Service) PostExpense(ctx context.Context, expenseID int64) error {
	src, err := s.sources.ExpenseSource(ctx, expenseID)
	if err != nil {
		return err
	}
	if src.AccountID == nil {
		return nil
	}

	counterpartyType, counterpartyName := src.Counterparty()
	now := s.now()
	tx := &domain.Transaction{
		AccountID:        *src.AccountID,
		Direction:        domain.Out,
		Amount:           src.Amount,
		Currency:         src.Currency,
		Method:           domain.MethodBankTransfer,
		CounterpartyType: counterpartyType,
		CounterpartyName: counterpartyName,
		Notes:            "expense for event: " + src.EventTitle,
		LinkEventID:      &src.EventID,
		LinkExpenseID:    &src.ExpenseID,
		OccurredAt:       now,
		PeriodKey:        periodKey(now),
	}
	return s.transactions.Create(ctx, tx)
}

func (s *Service) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.DisplayName == "" {
		return apperr.Validation("account display name is required")
	}
	if !account.Role.IsValid() {
		return apperr.Validation("unknown account role %q", account.Role)
	}
	if account.Currency == "" {
		account.Currency = s.cfg.DefaultCurrency
	}
	account.Active = true
	return s.accounts.Create(ctx, account)
}

func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.ListActive(ctx)
}

func (s *Service) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.transactions.ListRecent(ctx, limit)
}
