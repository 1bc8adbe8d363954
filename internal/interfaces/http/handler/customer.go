package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/safo-124/high-purchase-sub007/internal/application/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/dto"
)

// CustomerHandler handles customer account endpoints
type CustomerHandler struct {
	BaseHandler
	customers *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// CreateCustomerRequest is the request body for registering a customer
type CreateCustomerRequest struct {
	Code            string `json:"code" binding:"required,min=1,max=50"`
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Phone           string `json:"phone" binding:"max=50"`
	Email           string `json:"email" binding:"omitempty,email,max=200"`
	Address         string `json:"address" binding:"max=500"`
	GhanaCardNumber string `json:"ghana_card_number" binding:"max=50"`
	GuarantorName   string `json:"guarantor_name" binding:"max=200"`
	GuarantorPhone  string `json:"guarantor_phone" binding:"max=50"`
	CreditLimit     string `json:"credit_limit" binding:"omitempty,money"`
}

// UpdateCustomerRequest is the request body for updating customer details
type UpdateCustomerRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	Phone           string `json:"phone" binding:"max=50"`
	Email           string `json:"email" binding:"omitempty,email,max=200"`
	Address         string `json:"address" binding:"max=500"`
	GhanaCardNumber string `json:"ghana_card_number" binding:"max=50"`
	GuarantorName   string `json:"guarantor_name" binding:"max=200"`
	GuarantorPhone  string `json:"guarantor_phone" binding:"max=50"`
}

// SetCreditLimitRequest is the request body for setting a credit limit
type SetCreditLimitRequest struct {
	CreditLimit string `json:"credit_limit" binding:"required,money"`
}

// AssignCollectorRequest is the request body for assigning a collector
type AssignCollectorRequest struct {
	CollectorID uuid.UUID `json:"collector_id" binding:"required"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := partnerapp.CreateCustomerRequest{
		Code:            req.Code,
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		GhanaCardNumber: req.GhanaCardNumber,
		GuarantorName:   req.GuarantorName,
		GuarantorPhone:  req.GuarantorPhone,
	}
	if req.CreditLimit != "" {
		limit, err := parseMoney(req.CreditLimit)
		if err != nil {
			h.BadRequest(c, "Invalid credit_limit")
			return
		}
		appReq.CreditLimit = limit.Amount()
	}

	customer, err := h.customers.Create(c.Request.Context(), auth, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), auth, id, partnerapp.UpdateCustomerRequest{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		GhanaCardNumber: req.GhanaCardNumber,
		GuarantorName:   req.GuarantorName,
		GuarantorPhone:  req.GuarantorPhone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

func (h *CustomerHandler) SetCreditLimit(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req SetCreditLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	limit, err := parseMoney(req.CreditLimit)
	if err != nil {
		h.BadRequest(c, "Invalid credit_limit")
		return
	}

	customer, err := h.customers.SetCreditLimit(c.Request.Context(), auth, id, limit.Amount())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

func (h *CustomerHandler) AssignCollector(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req AssignCollectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customers.AssignCollector(c.Request.Context(), auth, id, req.CollectorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

func (h *CustomerHandler) UnassignCollector(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.UnassignCollector(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

func (h *CustomerHandler) Activate(c *gin.Context) {
	h.transition(c, h.customers.Activate)
}

func (h *CustomerHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.customers.Deactivate)
}

func (h *CustomerHandler) Blacklist(c *gin.Context) {
	h.transition(c, h.customers.Blacklist)
}

func (h *CustomerHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, auth shared.AuthContext, id uuid.UUID) (*partner.Customer, error),
) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customer, err := fn(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.Get(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

func (h *CustomerHandler) GetByCode(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}

	customer, err := h.customers.GetByCode(c.Request.Context(), auth, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// listCustomersQuery carries customer list query parameters
type listCustomersQuery struct {
	dto.ListRequest
	Status      string `form:"status" binding:"omitempty,oneof=active inactive blacklisted"`
	CollectorID string `form:"collector_id" binding:"omitempty,uuid"`
	Search      string `form:"search"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var q listCustomersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := partner.CustomerFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.Status != "" {
		status := partner.CustomerStatus(q.Status)
		filter.Status = &status
	}
	if q.CollectorID != "" {
		collectorID, _ := uuid.Parse(q.CollectorID)
		filter.CollectorID = &collectorID
	}

	customers, total, err := h.customers.List(c.Request.Context(), auth, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

func (h *CustomerHandler) ListByCollector(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	collectorID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	customers, err := h.customers.ListByCollector(c.Request.Context(), auth, collectorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.GET("/code/:code", h.GetByCode)
		customers.PUT("/:id", h.Update)
		customers.PUT("/:id/credit-limit", h.SetCreditLimit)
		customers.POST("/:id/collector", h.AssignCollector)
		customers.DELETE("/:id/collector", h.UnassignCollector)
		customers.POST("/:id/activate", h.Activate)
		customers.POST("/:id/deactivate", h.Deactivate)
		customers.POST("/:id/blacklist", h.Blacklist)
	}
	rg.GET("/collectors/:id/customers", h.ListByCollector)
}
