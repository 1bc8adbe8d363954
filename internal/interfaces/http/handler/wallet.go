package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	walletapp "github.com/safo-124/high-purchase-sub007/internal/application/wallet"
)

// WalletHandler handles customer wallet endpoints
type WalletHandler struct {
	BaseHandler
	wallets *walletapp.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(wallets *walletapp.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// DepositRequest is the request body for recording a wallet deposit
type DepositRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Amount     string    `json:"amount" binding:"required,money"`
	Reference  string    `json:"reference" binding:"max=100"`
}

// RejectDepositRequest is the request body for rejecting a pending deposit
type RejectDepositRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// DebitRequest is the request body for applying wallet funds to a purchase
type DebitRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	PurchaseID uuid.UUID `json:"purchase_id" binding:"required"`
	Amount     string    `json:"amount" binding:"required,money"`
}

func (h *WalletHandler) RequestDeposit(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	amount, err := parseMoney(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	tx, err := h.wallets.RequestDeposit(c.Request.Context(), auth, req.CustomerID, amount, req.Reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

func (h *WalletHandler) ConfirmDeposit(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	tx, err := h.wallets.ConfirmDeposit(c.Request.Context(), auth, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

func (h *WalletHandler) RejectDeposit(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req RejectDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.wallets.RejectDeposit(c.Request.Context(), auth, id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

func (h *WalletHandler) Debit(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var req DebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	amount, err := parseMoney(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	tx, err := h.wallets.DebitForPurchase(c.Request.Context(), auth, req.CustomerID, req.PurchaseID, amount)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Balance recomputes a customer's wallet balance from the confirmed ledger
func (h *WalletHandler) Balance(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	balance, err := h.wallets.RecomputeBalance(c.Request.Context(), auth, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"customer_id": customerID, "balance": balance.Amount()})
}

// RegisterRoutes registers wallet routes
func (h *WalletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wallet := rg.Group("/wallet")
	{
		wallet.POST("/deposits", h.RequestDeposit)
		wallet.POST("/deposits/:id/confirm", h.ConfirmDeposit)
		wallet.POST("/deposits/:id/reject", h.RejectDeposit)
		wallet.POST("/debits", h.Debit)
	}
	rg.GET("/customers/:id/wallet/balance", h.Balance)
}
