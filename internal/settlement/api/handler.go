package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/showbooks/backend/internal/platform/apperr"
	"github.com/showbooks/backend/internal/settlement/domain"
	"github.com/showbooks/backend/internal/settlement/service"
)

type SettlementHandler struct {
	svc *service.Service
}

func NewSettlementHandler(svc *service.Service) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

func (h *SettlementHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/split-policies", h.CreatePolicy)
	r.GET("/split-policies", h.ListPolicies)

	r.POST("/events/:id/settlement", h.ComputeSettlement)
	r.POST("/events/:id/settlement/lock", h.LockSettlement)
	r.POST("/events/:id/settlement/unlock", h.UnlockSettlement)
	r.GET("/events/:id/financials", h.EventFinancials)

	r.POST("/revenue", h.CreateRevenue)
	r.POST("/expenses", h.CreateExpense)
}

func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return id, true
}

func parseAmount(c *gin.Context, field, raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + ": " + raw})
		return decimal.Decimal{}, false
	}
	return amount, true
}

func parseDate(c *gin.Context, field, raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + ", want YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *SettlementHandler) CreatePolicy(c *gin.Context) {
	var req CreatePolicyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	shareA, ok := parseAmount(c, "partner_a_share", req.PartnerAShare)
	if !ok {
		return
	}
	shareB, ok := parseAmount(c, "partner_b_share", req.PartnerBShare)
	if !ok {
		return
	}
	floor := decimal.Zero
	if req.MinFundFloor != "" {
		if floor, ok = parseAmount(c, "min_fund_floor", req.MinFundFloor); !ok {
			return
		}
	}
	policy := &domain.SplitPolicy{
		Name:          req.Name,
		Variant:       domain.SplitVariant(req.Variant),
		PartnerAShare: shareA,
		PartnerBShare: shareB,
		MinFundFloor:  floor,
		Notes:         req.Notes,
	}
	if err := h.svc.CreatePolicy(c.Request.Context(), policy); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, policy)
}

func (h *SettlementHandler) ListPolicies(c *gin.Context) {
	policies, err := h.svc.ListPolicies(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, policies)
}

func (h *SettlementHandler) ComputeSettlement(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	calc, err := h.svc.ComputeAndSave(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (h *SettlementHandler) LockSettlement(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	if err := h.svc.Lock(c.Request.Context(), id); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": true})
}

func (h *SettlementHandler) UnlockSettlement(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	if err := h.svc.Unlock(c.Request.Context(), id); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": false})
}

func (h *SettlementHandler) EventFinancials(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	fin, err := h.svc.EventFinancials(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, fin)
}

func (h *SettlementHandler) CreateRevenue(c *gin.Context) {
	var req CreateRevenueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	amount, ok := parseAmount(c, "amount", req.Amount)
	if !ok {
		return
	}
	occurred, ok := parseDate(c, "occurred_on", req.OccurredOn)
	if !ok {
		return
	}
	if req.Currency == "" {
		req.Currency = "ILS"
	}
	item := &domain.RevenueItem{
		EventID:             req.EventID,
		Kind:                req.Kind,
		Amount:              amount,
		Currency:            req.Currency,
		Method:              req.Method,
		Reference:           req.Reference,
		ReceivedInAccountID: req.ReceivedInAccountID,
		OccurredOn:          occurred,
	}
	if err := h.svc.CreateRevenueItem(c.Request.Context(), item); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *SettlementHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	amount, ok := parseAmount(c, "amount", req.Amount)
	if !ok {
		return
	}
	occurred, ok := parseDate(c, "occurred_on", req.OccurredOn)
	if !ok {
		return
	}
	if req.Currency == "" {
		req.Currency = "ILS"
	}
	expense := &domain.Expense{
		EventID:           req.EventID,
		Category:          req.Category,
		Amount:            amount,
		Currency:          req.Currency,
		VendorID:          req.VendorID,
		VendorName:        req.VendorName,
		MusicianID:        req.MusicianID,
		MusicianName:      req.MusicianName,
		PaidFromAccountID: req.PaidFromAccountID,
		Notes:             req.Notes,
		OccurredOn:        occurred,
	}
	if err := h.svc.CreateExpense(c.Request.Context(), expense); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, expense)
}
