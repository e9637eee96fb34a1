package api

// Amounts travel as strings end to end so they never pass through a float.

type CreatePolicyReq struct {
	Name          string `json:"name" binding:"required"`
	Variant       string `json:"variant" binding:"required,oneof=PERCENT FIXED MIX"`
	PartnerAShare string `json:"partner_a_share" binding:"required"`
	PartnerBShare string `json:"partner_b_share" binding:"required"`
	MinFundFloor  string `json:"min_fund_floor"`
	Notes         string `json:"notes"`
}

type CreateRevenueReq struct {
	EventID             int64  `json:"event_id" binding:"required"`
	Kind                string `json:"kind" binding:"required"`
	Amount              string `json:"amount" binding:"required"`
	Currency            string `json:"currency"`
	Method              string `json:"method" binding:"required"`
	Reference           string `json:"reference"`
	ReceivedInAccountID *int64 `json:"received_in_account_id"`
	OccurredOn          string `json:"occurred_on" binding:"required"` // YYYY-MM-DD
}

type CreateExpenseReq struct {
	EventID           int64  `json:"event_id" binding:"required"`
	Category          string `json:"category" binding:"required"`
	Amount            string `json:"amount" binding:"required"`
	Currency          string `json:"currency"`
	VendorID          *int64 `json:"vendor_id"`
	VendorName        string `json:"vendor_name"`
	MusicianID        *int64 `json:"musician_id"`
	MusicianName      string `json:"musician_name"`
	PaidFromAccountID *int64 `json:"paid_from_account_id"`
	Notes             string `json:"notes"`
	OccurredOn        string `json:"occurred_on" binding:"required"`
}
