package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// RefundMethod represents how refunded money is returned to the customer
type RefundMethod string

const (
	RefundMethodWallet RefundMethod = "WALLET" // Credited to the customer wallet
	RefundMethodCash   RefundMethod = "CASH"   // Paid out at the counter
)

// IsValid checks if the refund method is valid
func (m RefundMethod) IsValid() bool {
	return m == RefundMethodWallet || m == RefundMethodCash
}

// Refund supersedes part or all of a purchase. Purchases are never
// deleted; a refund is the only way paid money leaves the obligation.
type Refund struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `json:"tenant_id"`
	PurchaseID   uuid.UUID       `json:"purchase_id"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	Amount       decimal.Decimal `json:"amount"`
	Method       RefundMethod    `json:"method"`
	Reason       string          `json:"reason"`
	ApprovedByID uuid.UUID       `json:"approved_by_id"`
	RefundedAt   time.Time       `json:"refunded_at"`
}

// TableName returns the table name for GORM
func (Refund) TableName() string {
	return "refunds"
}

// NewRefund creates a refund record against a purchase. The amount may not
// exceed what has actually been paid on the purchase.
func NewRefund(
	purchase *Purchase,
	amount valueobject.Money,
	method RefundMethod,
	reason string,
	approvedBy uuid.UUID,
) (*Refund, error) {
	if purchase == nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase cannot be nil")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}
	if amount.Amount().GreaterThan(purchase.AmountPaid) {
		return nil, shared.NewDomainErrorf("INVALID_AMOUNT",
			"Refund of %s exceeds paid amount of %s",
			amount.Amount().StringFixed(2), purchase.AmountPaid.StringFixed(2))
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_REFUND_METHOD", "Refund method must be WALLET or CASH")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Refund reason is required")
	}
	if approvedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Approving staff ID cannot be empty")
	}

	return &Refund{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     purchase.TenantID,
		PurchaseID:   purchase.ID,
		CustomerID:   purchase.CustomerID,
		Amount:       amount.Amount(),
		Method:       method,
		Reason:       reason,
		ApprovedByID: approvedBy,
		RefundedAt:   time.Now(),
	}, nil
}

// GetAmountMoney returns the refund amount as Money
func (r *Refund) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(r.Amount)
}
