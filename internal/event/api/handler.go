package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/showbooks/backend/internal/event/domain"
	"github.com/showbooks/backend/internal/event/service"
	"github.com/showbooks/backend/internal/platform/apperr"
)

type EventHandler struct {
	svc *service.Service
}

func NewEventHandler(svc *service.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/events", h.Create)
	r.GET("/events", h.List)
	r.GET("/events/:id", h.Get)
	r.PUT("/events/:id", h.Update)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return id, true
}

func parseTime(c *gin.Context, field, raw string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + ", want RFC3339"})
		return time.Time{}, false
	}
	return t, true
}

func fromRequest(c *gin.Context, req EventReq) (*domain.Event, bool) {
	start, ok := parseTime(c, "start_time", req.StartTime)
	if !ok {
		return nil, false
	}
	end, ok := parseTime(c, "end_time", req.EndTime)
	if !ok {
		return nil, false
	}
	fees := decimal.Zero
	if req.ProcessingFees != "" {
		var err error
		if fees, err = decimal.NewFromString(req.ProcessingFees); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid processing_fees: " + req.ProcessingFees})
			return nil, false
		}
	}
	return &domain.Event{
		Title:          req.Title,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		Venue:          req.Venue,
		StartTime:      start,
		EndTime:        end,
		Status:         domain.EventStatus(req.Status),
		ProcessingFees: fees,
		SplitPolicyID:  req.SplitPolicyID,
		TechNotes:      req.TechNotes,
	}, true
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	e, ok := fromRequest(c, req)
	if !ok {
		return
	}
	if err := h.svc.Create(c.Request.Context(), e); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	e, ok := fromRequest(c, req)
	if !ok {
		return
	}
	e.ID = id
	if e.Status == "" {
		e.Status = domain.StatusInquiry
	}
	if err := h.svc.Update(c.Request.Context(), e); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) List(c *gin.Context) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		var ok bool
		if from, ok = parseTime(c, "from", raw); !ok {
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		var ok bool
		if to, ok = parseTime(c, "to", raw); !ok {
			return
		}
	}
	events, err := h.svc.List(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
