package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/showbooks/backend/internal/booking/domain"
	"github.com/showbooks/backend/internal/booking/service"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type BookingHandler struct {
	svc *service.Service
}

func NewBookingHandler(svc *service.Service) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/assignments", h.SaveAssignment)
	r.DELETE("/assignments/:id", h.DeleteAssignment)
	r.GET("/events/:id/assignments", h.ListAssignments)

	r.POST("/musicians", h.CreateMusician)
	r.GET("/musicians", h.ListMusicians)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseFee(c *gin.Context, field, raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, true
	}
	fee, err := decimal.NewFromString(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + ": " + raw})
		return decimal.Decimal{}, false
	}
	return fee, true
}

func (h *BookingHandler) SaveAssignment(c *gin.Context) {
	var req AssignmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	fee, ok := parseFee(c, "agreed_fee", req.AgreedFee)
	if !ok {
		return
	}
	a := &domain.Assignment{
		EventID:    req.EventID,
		MusicianID: req.MusicianID,
		Status:     domain.AssignmentStatus(req.Status),
		AgreedFee:  fee,
		Notes:      req.Notes,
	}
	if err := h.svc.CreateOrUpdateAssignment(c.Request.Context(), a); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *BookingHandler) DeleteAssignment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAssignment(c.Request.Context(), id); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *BookingHandler) ListAssignments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	assignments, err := h.svc.ListAssignments(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *BookingHandler) CreateMusician(c *gin.Context) {
	var req CreateMusicianReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	fee, ok := parseFee(c, "default_fee", req.DefaultFee)
	if !ok {
		return
	}
	m := &domain.Musician{
		Name:       req.Name,
		Instrument: req.Instrument,
		Phone:      req.Phone,
		Email:      req.Email,
		DefaultFee: fee,
		Notes:      req.Notes,
	}
	if err := h.svc.CreateMusician(c.Request.Context(), m); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *BookingHandler) ListMusicians(c *gin.Context) {
	musicians, err := h.svc.ListMusicians(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, musicians)
}
