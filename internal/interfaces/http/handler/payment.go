package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/safo-124/high-purchase-sub007/internal/application/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/dto"
)

// PaymentHandler handles the payment recording and confirmation endpoints
type PaymentHandler struct {
	BaseHandler
	payments *ledgerapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *ledgerapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RecordPaymentRequest is the request body for recording a payment
type RecordPaymentRequest struct {
	PurchaseID uuid.UUID `json:"purchase_id" binding:"required"`
	Amount     string    `json:"amount" binding:"required,money"`
	Method     string    `json:"method" binding:"required,oneof=CASH MOBILE_MONEY BANK_TRANSFER WALLET CARD"`
	Reference  string    `json:"reference" binding:"max=100"`
}

// RejectPaymentRequest is the request body for rejecting a pending payment
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func (h *PaymentHandler) record(
	c *gin.Context,
	fn func(*gin.Context, ledgerapp.RecordPaymentRequest) (*ledger.Payment, error),
) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	amount, err := parseMoney(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	payment, err := fn(c, ledgerapp.RecordPaymentRequest{
		PurchaseID: req.PurchaseID,
		Amount:     amount,
		Method:     ledger.PaymentMethod(req.Method),
		Reference:  req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// RecordCollector records a field collection; it stays PENDING until confirmed
func (h *PaymentHandler) RecordCollector(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	h.record(c, func(c *gin.Context, req ledgerapp.RecordPaymentRequest) (*ledger.Payment, error) {
		return h.payments.RecordCollectorPayment(c.Request.Context(), auth, req)
	})
}

// RecordStaff records a counter payment; it is born CONFIRMED
func (h *PaymentHandler) RecordStaff(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	h.record(c, func(c *gin.Context, req ledgerapp.RecordPaymentRequest) (*ledger.Payment, error) {
		return h.payments.RecordStaffPayment(c.Request.Context(), auth, req)
	})
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	payment, err := h.payments.ConfirmPayment(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

func (h *PaymentHandler) Reject(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.payments.RejectPayment(c.Request.Context(), auth, id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// listPaymentsQuery carries pending payment list query parameters
type listPaymentsQuery struct {
	dto.ListRequest
	CollectorID string `form:"collector_id" binding:"omitempty,uuid"`
	Method      string `form:"method" binding:"omitempty,oneof=CASH MOBILE_MONEY BANK_TRANSFER WALLET CARD"`
}

func (h *PaymentHandler) ListPending(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var q listPaymentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := ledger.PaymentFilter{Page: q.Page, PageSize: q.PageSize}
	if q.CollectorID != "" {
		id, _ := uuid.Parse(q.CollectorID)
		filter.CollectorID = &id
	}
	if q.Method != "" {
		method := ledger.PaymentMethod(q.Method)
		filter.Method = &method
	}

	payments, err := h.payments.ListPendingPayments(c.Request.Context(), auth, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// ListByPurchase returns the full payment ledger for one purchase
func (h *PaymentHandler) ListByPurchase(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	purchaseID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	payments, err := h.payments.ListPaymentsByPurchase(c.Request.Context(), auth, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("/collector", h.RecordCollector)
		payments.POST("/staff", h.RecordStaff)
		payments.GET("/pending", h.ListPending)
		payments.POST("/:id/confirm", h.Confirm)
		payments.POST("/:id/reject", h.Reject)
	}
	rg.GET("/purchases/:id/payments", h.ListByPurchase)
}
