package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/showbooks/backend/internal/platform/apperr"
	"github.com/showbooks/backend/internal/settlement/domain"
)

// TreasuryPoster is what the settlement module needs from treasury:
// auto-posting a ledger transaction when a revenue item or expense names
// a funding account. Wired to the treasury service in main.
type TreasuryPoster interface {
	PostRevenue(ctx context.Context, revenueID int64) error
	PostExpense(ctx context.Context, expenseID int64) error
}

type Config struct {
	// DefaultPolicyName is looked up when an event has no policy of its own.
	DefaultPolicyName string
}

type Service struct {
	cfg         Config
	policies    domain.PolicyRepository
	events      domain.EventFinanceRepository
	settlements domain.SettlementRepository
	revenues    domain.RevenueRepository
	expenses    domain.ExpenseRepository
	poster      TreasuryPoster
	logger      *zap.Logger
}

func NewService(
	cfg Config,
	policies domain.PolicyRepository,
	events domain.EventFinanceRepository,
	settlements domain.SettlementRepository,
	revenues domain.RevenueRepository,
	expenses domain.ExpenseRepository,
	poster TreasuryPoster,
	logger *zap.Logger,
) *Service {
	return &Service{
		cfg:         cfg,
		policies:    policies,
		events:      events,
		settlements: settlements,
		revenues:    revenues,
		expenses:    expenses,
		poster:      poster,
		logger:      logger,
	}
}

// ResolvePolicy returns the event's own policy, or the configured default
// when the event names none.
func (s *Service) ResolvePolicy(ctx context.Context, fin *domain.EventFinance) (*domain.SplitPolicy, error) {
	if fin.SplitPolicyID != nil {
		return s.policies.FindByID(ctx, *fin.SplitPolicyID)
	}
	policy, err := s.policies.FindByName(ctx, s.cfg.DefaultPolicyName)
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("no split policy found")
	}
	return policy, err
}

// Calculate resolves the policy and runs the pure calculator. No writes.
func (s *Service) Calculate(ctx context.Context, fin *domain.EventFinance) (domain.Calculation, error) {
	policy, err := s.ResolvePolicy(ctx, fin)
	if err != nil {
		return domain.Calculation{}, err
	}
	return domain.Calculate(*fin, policy)
}

// ComputeAndSave recomputes the settlement for an event and upserts it.
// A locked settlement is never overwritten; unlock first.
func (s *Service) ComputeAndSave(ctx context.Context, eventID int64) (domain.Calculation, error) {
	fin, err := s.events.LoadEventFinance(ctx, eventID)
	if err != nil {
		return domain.Calculation{}, err
	}

	calc, err := s.Calculate(ctx, fin)
	if err != nil {
		return domain.Calculation{}, err
	}
	if !calc.Reconciles() {
		// Fatal programming (or policy-data) error, never swallowed.
		return domain.Calculation{}, apperr.Invariant(
			"settlement for event %d does not reconcile: draws %s + %s + fund %s != net %s",
			eventID, calc.PartnerADraw, calc.PartnerBDraw, calc.BusinessFundContribution, calc.NetRevenue)
	}

	existing, err := s.settlements.FindByEventID(ctx, eventID)
	if err != nil && !apperr.IsNotFound(err) {
		return domain.Calculation{}, err
	}
	if existing != nil && existing.Locked {
		return domain.Calculation{}, apperr.Conflict("settlement for event %d is locked", eventID)
	}

	row := &domain.Settlement{
		EventID:                  eventID,
		GrossRevenue:             calc.GrossRevenue,
		DirectCosts:              calc.DirectCosts,
		ProcessingFees:           calc.ProcessingFees,
		NetRevenue:               calc.NetRevenue,
		PartnerADraw:             calc.PartnerADraw,
		PartnerBDraw:             calc.PartnerBDraw,
		BusinessFundContribution: calc.BusinessFundContribution,
	}
	if err := s.settlements.Upsert(ctx, row); err != nil {
		return domain.Calculation{}, err
	}

	s.logger.Info("settlement saved",
		zap.Int64("event_id", eventID),
		zap.String("net_revenue", calc.NetRevenue.String()))
	return calc, nil
}

// Lock flips the flag only; no recomputation happens here.
func (s *Service) Lock(ctx context.Context, eventID int64) error {
	return s.settlements.SetLocked(ctx, eventID, true)
}

// Unlock is the explicit step an authorized operator takes before a
// locked settlement may be recomputed.
func (s *Service) Unlock(ctx context.Context, eventID int64) error {
	return s.settlements.SetLocked(ctx, eventID, false)
}

func (s *Service) CreatePolicy(ctx context.Context, policy *domain.SplitPolicy) error {
	if policy.Name == "" {
		return apperr.Validation("policy name is required")
	}
	if !policy.Variant.IsValid() {
		return apperr.Validation("unknown split variant %q", policy.Variant)
	}
	if policy.PartnerAShare.IsNegative() || policy.PartnerBShare.IsNegative() {
		return apperr.Validation("partner shares must be non-negative")
	}
	if policy.Variant == domain.SplitPercent {
		one := decimal.NewFromInt(1)
		if policy.PartnerAShare.GreaterThan(one) || policy.PartnerBShare.GreaterThan(one) {
			return apperr.Validation("percent shares must be fractions in [0,1]")
		}
	}
	if policy.MinFundFloor.IsNegative() {
		return apperr.Validation("minimum fund floor must be non-negative")
	}
	return s.policies.Create(ctx, policy)
}

func (s *Service) ListPolicies(ctx context.Context) ([]domain.SplitPolicy, error) {
	return s.policies.List(ctx)
}

// CreateRevenueItem records the item and, when it names a receiving
// account, posts the matching IN transaction to the treasury.
func (s *Service) CreateRevenueItem(ctx context.Context, item *domain.RevenueItem) error {
	if !item.Amount.IsPositive() {
		return apperr.Validation("revenue amount must be positive")
	}
	if err := s.revenues.Create(ctx, item); err != nil {
		return err
	}
	if item.ReceivedInAccountID != nil {
		if err := s.poster.PostRevenue(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	if !expense.Amount.IsPositive() {
		return apperr.Validation("expense amount must be positive")
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return err
	}
	if expense.PaidFromAccountID != nil {
		if err := s.poster.PostExpense(ctx, expense.ID); err != nil {
			return err
		}
	}
	return nil
}

// Financials is the read model behind the event finance panel: live totals
// plus the stored settlement when one exists.
type Financials struct {
	GrossRevenue   decimal.Decimal    `json:"gross_revenue"`
	DirectCosts    decimal.Decimal    `json:"direct_costs"`
	ProcessingFees decimal.Decimal    `json:"processing_fees"`
	NetRevenue     decimal.Decimal    `json:"net_revenue"`
	Settlement     *domain.Settlement `json:"settlement,omitempty"`
}

func (s *Service) EventFinancials(ctx context.Context, eventID int64) (*Financials, error) {
	fin, err := s.events.LoadEventFinance(ctx, eventID)
	if err != nil {
		return nil, err
	}
	gross := decimal.Zero
	for _, item := range fin.RevenueItems {
		gross = gross.Add(item.Amount)
	}
	costs := decimal.Zero
	for _, exp := range fin.Expenses {
		costs = costs.Add(exp.Amount)
	}
	out := &Financials{
		GrossRevenue:   gross,
		DirectCosts:    costs,
		ProcessingFees: fin.ProcessingFees,
		NetRevenue:     gross.Sub(costs).Sub(fin.ProcessingFees),
	}
	settled, err := s.settlements.FindByEventID(ctx, eventID)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	out.Settlement = settled
	return out, nil
}
