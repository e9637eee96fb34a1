package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/showbooks/backend/internal/platform/apperr"
	"github.com/showbooks/backend/internal/treasury/domain"
	"github.com/showbooks/backend/internal/treasury/service"
)

type TreasuryHandler struct {
	svc *service.Service
}

func NewTreasuryHandler(svc *service.Service) *TreasuryHandler {
	return &TreasuryHandler{svc: svc}
}

func (h *TreasuryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/treasury/balances", h.Balances)
	r.GET("/treasury/holdings", h.PartnerHoldings)
	r.POST("/treasury/transfers", h.Transfer)
	r.GET("/treasury/transactions", h.RecentTransactions)
	r.POST("/treasury/accounts", h.CreateAccount)
	r.GET("/treasury/accounts", h.ListAccounts)
}

func parseAmount(c *gin.Context, field, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + ": " + raw})
		return decimal.Decimal{}, false
	}
	return amount, true
}

func (h *TreasuryHandler) Balances(c *gin.Context) {
	balances, err := h.svc.Balances(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, balances)
}

func (h *TreasuryHandler) PartnerHoldings(c *gin.Context) {
	total, err := h.svc.PartnerHoldings(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"partner_holdings": total})
}

func (h *TreasuryHandler) Transfer(c *gin.Context) {
	var req TransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	amount, ok := parseAmount(c, "amount", req.Amount)
	if !ok {
		return
	}
	journalID, err := h.svc.Transfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, amount, req.Notes)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"journal_group_id": journalID})
}

func (h *TreasuryHandler) RecentTransactions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + raw})
			return
		}
		limit = n
	}
	transactions, err := h.svc.RecentTransactions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *TreasuryHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	opening := decimal.Zero
	if req.OpeningBalance != "" {
		var ok bool
		if opening, ok = parseAmount(c, "opening_balance", req.OpeningBalance); !ok {
			return
		}
	}
	account := &domain.Account{
		DisplayName:    req.DisplayName,
		Role:           domain.AccountRole(req.Role),
		OwnerPartner:   req.OwnerPartner,
		OpeningBalance: opening,
		Currency:       req.Currency,
	}
	if err := h.svc.CreateAccount(c.Request.Context(), account); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *TreasuryHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.svc.ListAccounts(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, accounts)
}
