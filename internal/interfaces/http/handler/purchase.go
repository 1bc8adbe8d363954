package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/safo-124/high-purchase-sub007/internal/application/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/dto"
)

// PurchaseHandler handles purchase obligation endpoints
type PurchaseHandler struct {
	BaseHandler
	purchases *ledgerapp.PurchaseService
	refunds   *ledgerapp.RefundService
	graceDays int
}

// NewPurchaseHandler creates a new PurchaseHandler. graceDays is the
// delinquency grace period used by the default sweep.
func NewPurchaseHandler(purchases *ledgerapp.PurchaseService, refunds *ledgerapp.RefundService, graceDays int) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, refunds: refunds, graceDays: graceDays}
}

// PurchaseItemRequest is one product line in a purchase request
type PurchaseItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Name      string    `json:"name" binding:"required,max=200"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice string    `json:"unit_price" binding:"required,money"`
}

// CreatePurchaseRequest is the request body for creating a purchase
type CreatePurchaseRequest struct {
	ShopID       uuid.UUID             `json:"shop_id" binding:"required"`
	CustomerID   uuid.UUID             `json:"customer_id" binding:"required"`
	PurchaseType string                `json:"purchase_type" binding:"required,oneof=CASH LAYAWAY CREDIT"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	DownPayment  string                `json:"down_payment" binding:"omitempty,money"`
	DownMethod   string                `json:"down_method" binding:"omitempty,oneof=CASH MOBILE_MONEY BANK_TRANSFER WALLET CARD"`
	Installments int                   `json:"installments" binding:"min=0"`
	TenorDays    int                   `json:"tenor_days" binding:"min=0"`
}

// RefundPurchaseRequest is the request body for refunding against a purchase
type RefundPurchaseRequest struct {
	Amount string `json:"amount" binding:"required,money"`
	Method string `json:"method" binding:"required,oneof=WALLET CASH"`
	Reason string `json:"reason" binding:"required,max=500"`
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]ledgerapp.CreatePurchaseItem, 0, len(req.Items))
	for _, it := range req.Items {
		unitPrice, err := parseMoney(it.UnitPrice)
		if err != nil {
			h.BadRequest(c, "Invalid unit_price for item "+it.Name)
			return
		}
		items = append(items, ledgerapp.CreatePurchaseItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice,
		})
	}

	downPayment := valueobject.ZeroGHS()
	if req.DownPayment != "" {
		var err error
		downPayment, err = parseMoney(req.DownPayment)
		if err != nil {
			h.BadRequest(c, "Invalid down_payment")
			return
		}
	}

	purchase, err := h.purchases.CreatePurchase(c.Request.Context(), auth, ledgerapp.CreatePurchaseRequest{
		ShopID:       req.ShopID,
		CustomerID:   req.CustomerID,
		PurchaseType: ledger.PurchaseType(req.PurchaseType),
		Items:        items,
		DownPayment:  downPayment,
		DownMethod:   ledger.PaymentMethod(req.DownMethod),
		Installments: req.Installments,
		TenorDays:    req.TenorDays,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchases.GetPurchase(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// listPurchasesQuery carries purchase list query parameters
type listPurchasesQuery struct {
	dto.ListRequest
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ShopID     string `form:"shop_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=ACTIVE COMPLETED OVERDUE DEFAULTED"`
	Type       string `form:"type" binding:"omitempty,oneof=CASH LAYAWAY CREDIT"`
	Search     string `form:"search"`
}

func (h *PurchaseHandler) List(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var q listPurchasesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := ledger.PurchaseFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.CustomerID != "" {
		id, _ := uuid.Parse(q.CustomerID)
		filter.CustomerID = &id
	}
	if q.ShopID != "" {
		id, _ := uuid.Parse(q.ShopID)
		filter.ShopID = &id
	}
	if q.Status != "" {
		status := ledger.PurchaseStatus(q.Status)
		filter.Status = &status
	}
	if q.Type != "" {
		ptype := ledger.PurchaseType(q.Type)
		filter.Type = &ptype
	}

	purchases, total, err := h.purchases.ListPurchases(c.Request.Context(), auth, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.PageSize)
}

func (h *PurchaseHandler) AdvanceDelivery(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchases.AdvanceDelivery(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

func (h *PurchaseHandler) Refund(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req RefundPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	amount, err := parseMoney(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	refund, err := h.refunds.Refund(c.Request.Context(), auth, ledgerapp.RefundRequest{
		PurchaseID: id,
		Amount:     amount,
		Method:     ledger.RefundMethod(req.Method),
		Reason:     req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, refund)
}

// SweepOverdue flips active purchases past their due date to OVERDUE
func (h *PurchaseHandler) SweepOverdue(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}

	result, err := h.purchases.MarkOverduePurchases(c.Request.Context(), auth.TenantID, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SweepDefaulted writes down overdue purchases past the grace period
func (h *PurchaseHandler) SweepDefaulted(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}

	result, err := h.purchases.MarkDefaultedPurchases(c.Request.Context(), auth.TenantID, time.Now(), h.graceDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.Get)
		purchases.POST("/:id/delivery/advance", h.AdvanceDelivery)
		purchases.POST("/:id/refunds", h.Refund)
		purchases.POST("/sweeps/overdue", h.SweepOverdue)
		purchases.POST("/sweeps/defaulted", h.SweepDefaulted)
	}
}
