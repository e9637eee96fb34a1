package api

type TransferReq struct {
	FromAccountID int64  `json:"from_account_id" binding:"required"`
	ToAccountID   int64  `json:"to_account_id" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	Notes         string `json:"notes"`
}

type CreateAccountReq struct {
	DisplayName    string `json:"display_name" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=PARTNER_WALLET CASH_BOX BANK FUND"`
	OwnerPartner   string `json:"owner_partner"`
	OpeningBalance string `json:"opening_balance"`
	Currency       string `json:"currency"`
}
