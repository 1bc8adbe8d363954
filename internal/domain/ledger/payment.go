package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodWallet       PaymentMethod = "WALLET"
	PaymentMethodCard         PaymentMethod = "CARD"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodBankTransfer,
		PaymentMethodWallet, PaymentMethodCard:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the confirmation state of a payment.
// The three states are explicit: a payment is never "confirmed and
// rejected", and staff-recorded payments are born CONFIRMED.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusRejected  PaymentStatus = "REJECTED"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true once the payment can no longer transition
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusRejected
}

// Payment is an append-only ledger entry against exactly one Purchase.
// A payment contributes to the purchase balance only once CONFIRMED; the
// confirm/reject transition is terminal and the record is otherwise
// immutable.
type Payment struct {
	shared.BaseEntity
	TenantID        uuid.UUID       `json:"tenant_id"`
	ShopID          uuid.UUID       `json:"shop_id"`
	PurchaseID      uuid.UUID       `json:"purchase_id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	CollectorID     *uuid.UUID      `json:"collector_id"` // Set for collector-recorded payments
	RecordedByID    uuid.UUID       `json:"recorded_by_id"`
	Status          PaymentStatus   `json:"status"`
	ConfirmedByID   *uuid.UUID      `json:"confirmed_by_id"`
	ConfirmedAt     *time.Time      `json:"confirmed_at"`
	RejectedAt      *time.Time      `json:"rejected_at"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	Reference       string          `json:"reference,omitempty"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// newPayment validates the fields common to both creation paths
func newPayment(
	tenantID, shopID, purchaseID, customerID, recordedBy uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
) (*Payment, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if recordedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Recording staff ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	return &Payment{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		ShopID:       shopID,
		PurchaseID:   purchaseID,
		CustomerID:   customerID,
		Amount:       amount.Amount(),
		Method:       method,
		RecordedByID: recordedBy,
	}, nil
}

// NewCollectorPayment creates a payment recorded in the field by a debt
// collector. It starts PENDING and requires confirmation by a higher-trust
// role before it affects any balance.
func NewCollectorPayment(
	tenantID, shopID, purchaseID, customerID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	collectorID uuid.UUID,
) (*Payment, error) {
	if collectorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}
	p, err := newPayment(tenantID, shopID, purchaseID, customerID, collectorID, amount, method)
	if err != nil {
		return nil, err
	}
	p.CollectorID = &collectorID
	p.Status = PaymentStatusPending
	return p, nil
}

// NewStaffPayment creates a payment recorded at the counter by sales staff.
// It is born CONFIRMED in a single step: the recorder is also the confirmer.
func NewStaffPayment(
	tenantID, shopID, purchaseID, customerID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	staffID uuid.UUID,
) (*Payment, error) {
	p, err := newPayment(tenantID, shopID, purchaseID, customerID, staffID, amount, method)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p.Status = PaymentStatusConfirmed
	p.ConfirmedByID = &staffID
	p.ConfirmedAt = &now
	return p, nil
}

// Confirm transitions PENDING -> CONFIRMED. Terminal states are rejected
// with a STATE_CONFLICT so callers can distinguish a double confirm from a
// confirm-after-reject.
func (p *Payment) Confirm(confirmedBy uuid.UUID) error {
	switch p.Status {
	case PaymentStatusConfirmed:
		return shared.NewDomainError("STATE_CONFLICT", "Payment is already confirmed")
	case PaymentStatusRejected:
		return shared.NewDomainError("STATE_CONFLICT", "Payment was already rejected")
	}
	if confirmedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_STAFF", "Confirming staff ID cannot be empty")
	}
	now := time.Now()
	p.Status = PaymentStatusConfirmed
	p.ConfirmedByID = &confirmedBy
	p.ConfirmedAt = &now
	p.UpdatedAt = now
	return nil
}

// Reject transitions PENDING -> REJECTED with a reason. No balance effect.
func (p *Payment) Reject(rejectedBy uuid.UUID, reason string) error {
	switch p.Status {
	case PaymentStatusConfirmed:
		return shared.NewDomainError("STATE_CONFLICT", "Payment is already confirmed")
	case PaymentStatusRejected:
		return shared.NewDomainError("STATE_CONFLICT", "Payment was already rejected")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	now := time.Now()
	p.Status = PaymentStatusRejected
	p.RejectedAt = &now
	p.RejectionReason = reason
	p.ConfirmedByID = &rejectedBy
	p.UpdatedAt = now
	return nil
}

// IsConfirmed returns true if the payment has been confirmed
func (p *Payment) IsConfirmed() bool {
	return p.Status == PaymentStatusConfirmed
}

// IsPending returns true if the payment awaits confirmation
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// GetAmountMoney returns the payment amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(p.Amount)
}
