package domain

// Direction of money relative to the account.
type Direction string

const (
	In  Direction = "IN"
	Out Direction = "OUT"
)

func (d Direction) IsValid() bool { return d == In || d == Out }

// AccountRole replaces the old display-name matching: partner holdings
// and similar summaries filter on this enum by equality.
type AccountRole string

const (
	RolePartnerWallet AccountRole = "PARTNER_WALLET"
	RoleCashBox       AccountRole = "CASH_BOX"
	RoleBank          AccountRole = "BANK"
	RoleFund          AccountRole = "FUND"
)

func (r AccountRole) IsValid() bool {
	switch r {
	case RolePartnerWallet, RoleCashBox, RoleBank, RoleFund:
		return true
	}
	return false
}

type CounterpartyType string

const (
	CounterpartyClient   CounterpartyType = "CLIENT"
	CounterpartyVendor   CounterpartyType = "VENDOR"
	CounterpartyMusician CounterpartyType = "MUSICIAN"
	CounterpartyPartner  CounterpartyType = "PARTNER"
	CounterpartyOther    CounterpartyType = "OTHER"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodBit          PaymentMethod = "BIT"
	MethodCheck        PaymentMethod = "CHECK"
	MethodCard         PaymentMethod = "CARD"
	MethodOther        PaymentMethod = "OTHER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodBit, MethodCheck, MethodCard, MethodOther:
		return true
	}
	return false
}
