package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commissionapp "github.com/safo-124/high-purchase-sub007/internal/application/commission"
	"github.com/safo-124/high-purchase-sub007/internal/domain/commission"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/dto"
)

// CommissionHandler handles collector commission endpoints
type CommissionHandler struct {
	BaseHandler
	commissions *commissionapp.CommissionService
	defaultRate decimal.Decimal
}

// NewCommissionHandler creates a new CommissionHandler. defaultRate is used
// when a calculation request does not name a rate.
func NewCommissionHandler(commissions *commissionapp.CommissionService, defaultRate decimal.Decimal) *CommissionHandler {
	return &CommissionHandler{commissions: commissions, defaultRate: defaultRate}
}

// CalculateCommissionsRequest is the request body for a commission run
type CalculateCommissionsRequest struct {
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
	Rate        string    `json:"rate"`
	Force       bool      `json:"force"`
}

// MarkPaidRequest is the request body for recording a commission payout
type MarkPaidRequest struct {
	Reference string `json:"reference" binding:"max=100"`
}

func (h *CommissionHandler) Calculate(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var req CalculateCommissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate := h.defaultRate
	if req.Rate != "" {
		var err error
		rate, err = decimal.NewFromString(req.Rate)
		if err != nil {
			h.BadRequest(c, "Invalid rate")
			return
		}
	}

	created, err := h.commissions.Calculate(c.Request.Context(), auth, commissionapp.CalculateRequest{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Rate:        rate,
		Force:       req.Force,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

func (h *CommissionHandler) Approve(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.commissions.Approve(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *CommissionHandler) MarkPaid(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.commissions.MarkPaid(c.Request.Context(), auth, id, req.Reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// listCommissionsQuery carries commission list query parameters
type listCommissionsQuery struct {
	dto.ListRequest
	CollectorID string `form:"collector_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=PENDING APPROVED PAID"`
}

func (h *CommissionHandler) List(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var q listCommissionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := commission.Filter{Page: q.Page, PageSize: q.PageSize}
	if q.CollectorID != "" {
		id, _ := uuid.Parse(q.CollectorID)
		filter.CollectorID = &id
	}
	if q.Status != "" {
		status := commission.Status(q.Status)
		filter.Status = &status
	}

	commissions, err := h.commissions.List(c.Request.Context(), auth, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, commissions)
}

// RegisterRoutes registers commission routes
func (h *CommissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	commissions := rg.Group("/commissions")
	{
		commissions.POST("/runs", h.Calculate)
		commissions.GET("", h.List)
		commissions.POST("/:id/approve", h.Approve)
		commissions.POST("/:id/pay", h.MarkPaid)
	}
}
