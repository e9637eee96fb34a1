package domain

import (
	"github.com/shopspring/decimal"

	"github.com/showbooks/backend/internal/platform/apperr"
)

// Calculation is the six-field result of settling one event.
// PartnerADraw + PartnerBDraw + BusinessFundContribution should equal
// NetRevenue exactly; callers verify with Reconciles before persisting.
type Calculation struct {
	GrossRevenue             decimal.Decimal `json:"gross_revenue"`
	DirectCosts              decimal.Decimal `json:"direct_costs"`
	ProcessingFees           decimal.Decimal `json:"processing_fees"`
	NetRevenue               decimal.Decimal `json:"net_revenue"`
	PartnerADraw             decimal.Decimal `json:"partner_a_draw"`
	PartnerBDraw             decimal.Decimal `json:"partner_b_draw"`
	BusinessFundContribution decimal.Decimal `json:"business_fund_contribution"`
}

func (c Calculation) Reconciles() bool {
	return c.PartnerADraw.Add(c.PartnerBDraw).Add(c.BusinessFundContribution).Equal(c.NetRevenue)
}

var two = decimal.NewFromInt(2)

// Calculate is pure and deterministic: same inputs, same output, no I/O.
// Policy resolution (default fallback) happens in the service; here the
// policy is required.
//
// Draw rounding always floors so partners are never allocated beyond net;
// the remainder flows to the business fund. When the fund lands under the
// policy floor, both partners absorb the deficit symmetrically (ceil of
// half each) and are clamped at zero independently — the other partner's
// reduction does not grow to compensate, so the final fund can exceed the
// floor. The fund is then recomputed as net minus draws, not re-maxed, to
// keep the totals exact.
func Calculate(fin EventFinance, policy *SplitPolicy) (Calculation, error) {
	if policy == nil {
		return Calculation{}, apperr.NotFound("no split policy found")
	}
	if !policy.Variant.IsValid() {
		return Calculation{}, apperr.Validation("unknown split variant %q", policy.Variant)
	}

	gross := decimal.Zero
	for _, item := range fin.RevenueItems {
		gross = gross.Add(item.Amount)
	}
	costs := decimal.Zero
	for _, exp := range fin.Expenses {
		costs = costs.Add(exp.Amount)
	}
	net := gross.Sub(costs).Sub(fin.ProcessingFees)

	var drawA, drawB decimal.Decimal
	switch policy.Variant {
	case SplitPercent:
		drawA = net.Mul(policy.PartnerAShare).Floor()
		drawB = net.Mul(policy.PartnerBShare).Floor()
	case SplitFixed:
		drawA = policy.PartnerAShare
		drawB = policy.PartnerBShare
	case SplitMix:
		remaining := net.Sub(policy.PartnerAShare).Sub(policy.PartnerBShare)
		bonus := decimal.Zero
		if remaining.IsPositive() {
			bonus = remaining.Div(two).Floor()
		}
		drawA = policy.PartnerAShare.Add(bonus)
		drawB = policy.PartnerBShare.Add(bonus)
	}

	fund := decimal.Max(decimal.Zero, net.Sub(drawA).Sub(drawB))

	if fund.LessThan(policy.MinFundFloor) {
		deficit := policy.MinFundFloor.Sub(fund)
		reduction := deficit.Div(two).Ceil()
		drawA = decimal.Max(decimal.Zero, drawA.Sub(reduction))
		drawB = decimal.Max(decimal.Zero, drawB.Sub(reduction))
		fund = net.Sub(drawA).Sub(drawB)
	}

	return Calculation{
		GrossRevenue:             gross,
		DirectCosts:              costs,
		ProcessingFees:           fin.ProcessingFees,
		NetRevenue:               net,
		PartnerADraw:             drawA,
		PartnerBDraw:             drawB,
		BusinessFundContribution: fund,
	}, nil
}
