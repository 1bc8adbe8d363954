package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cashdeskapp "github.com/safo-124/high-purchase-sub007/internal/application/cashdesk"
	"github.com/safo-124/high-purchase-sub007/internal/domain/cashdesk"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/dto"
)

// CashdeskHandler handles end-of-day cash reconciliation endpoints
type CashdeskHandler struct {
	BaseHandler
	cashdesks *cashdeskapp.CashdeskService
}

// NewCashdeskHandler creates a new CashdeskHandler
func NewCashdeskHandler(cashdesks *cashdeskapp.CashdeskService) *CashdeskHandler {
	return &CashdeskHandler{cashdesks: cashdesks}
}

// SubmitSummaryRequest is the request body for an end-of-day summary
type SubmitSummaryRequest struct {
	ShopID          uuid.UUID `json:"shop_id" binding:"required"`
	SummaryDate     time.Time `json:"summary_date" binding:"required"`
	Channel         string    `json:"channel" binding:"required,oneof=CASH MOBILE_MONEY BANK_TRANSFER"`
	OpeningBalance  string    `json:"opening_balance" binding:"required,money"`
	CollectedAmount string    `json:"collected_amount" binding:"required,money"`
	Expenses        string    `json:"expenses" binding:"required,money"`
	ClosingBalance  string    `json:"closing_balance" binding:"required,money"`
}

// ReviewRequest is the request body for closing a summary review
type ReviewRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

func (h *CashdeskHandler) Submit(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var req SubmitSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	in := cashdesk.NewDailySummaryInput{
		ShopID:      req.ShopID,
		SummaryDate: req.SummaryDate,
		Channel:     cashdesk.Channel(req.Channel),
	}
	var err error
	if in.OpeningBalance, err = parseMoney(req.OpeningBalance); err != nil {
		h.BadRequest(c, "Invalid opening_balance")
		return
	}
	if in.CollectedAmount, err = parseMoney(req.CollectedAmount); err != nil {
		h.BadRequest(c, "Invalid collected_amount")
		return
	}
	if in.Expenses, err = parseMoney(req.Expenses); err != nil {
		h.BadRequest(c, "Invalid expenses")
		return
	}
	if in.ClosingBalance, err = parseMoney(req.ClosingBalance); err != nil {
		h.BadRequest(c, "Invalid closing_balance")
		return
	}

	summary, err := h.cashdesks.SubmitSummary(c.Request.Context(), auth, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, summary)
}

// CrossCheck compares a summary against the payment ledger's confirmed total
func (h *CashdeskHandler) CrossCheck(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	check, err := h.cashdesks.CrossCheck(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, check)
}

func (h *CashdeskHandler) Verify(c *gin.Context) {
	h.review(c, h.cashdesks.VerifySummary)
}

func (h *CashdeskHandler) FlagDiscrepancy(c *gin.Context) {
	h.review(c, h.cashdesks.FlagDiscrepancy)
}

func (h *CashdeskHandler) review(
	c *gin.Context,
	fn func(ctx context.Context, auth shared.AuthContext, id uuid.UUID, notes string) (*cashdesk.DailySummary, error),
) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := fn(c.Request.Context(), auth, id, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// listSummariesQuery carries summary list query parameters
type listSummariesQuery struct {
	dto.ListRequest
	ShopID  string `form:"shop_id" binding:"omitempty,uuid"`
	Channel string `form:"channel" binding:"omitempty,oneof=CASH MOBILE_MONEY BANK_TRANSFER"`
	Status  string `form:"status" binding:"omitempty,oneof=DRAFT VERIFIED DISCREPANCY"`
}

func (h *CashdeskHandler) List(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var q listSummariesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := cashdesk.Filter{Page: q.Page, PageSize: q.PageSize}
	if q.ShopID != "" {
		id, _ := uuid.Parse(q.ShopID)
		filter.ShopID = &id
	}
	if q.Channel != "" {
		channel := cashdesk.Channel(q.Channel)
		filter.Channel = &channel
	}
	if q.Status != "" {
		status := cashdesk.SummaryStatus(q.Status)
		filter.Status = &status
	}

	summaries, err := h.cashdesks.ListSummaries(c.Request.Context(), auth, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// RegisterRoutes registers cashdesk routes
func (h *CashdeskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	summaries := rg.Group("/cashdesk/summaries")
	{
		summaries.POST("", h.Submit)
		summaries.GET("", h.List)
		summaries.GET("/:id/cross-check", h.CrossCheck)
		summaries.POST("/:id/verify", h.Verify)
		summaries.POST("/:id/discrepancy", h.FlagDiscrepancy)
	}
}
