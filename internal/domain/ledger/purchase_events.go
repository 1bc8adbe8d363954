package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// PurchaseCreatedEvent is raised when a new purchase obligation is created
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	PurchaseType   PurchaseType    `json:"purchase_type"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
}

// EventType returns the event type name
func (e *PurchaseCreatedEvent) EventType() string {
	return "PurchaseCreated"
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseCreated", "Purchase", p.ID, p.TenantID),
		PurchaseID:      p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		CustomerID:      p.CustomerID,
		PurchaseType:    p.PurchaseType,
		TotalAmount:     p.TotalAmount,
		DownPayment:     p.DownPayment,
		DueDate:         p.DueDate,
	}
}

// PurchasePaymentAppliedEvent is raised when a confirmed payment moves the balance
type PurchasePaymentAppliedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	Amount         decimal.Decimal `json:"amount"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	Outstanding    decimal.Decimal `json:"outstanding_balance"`
}

// EventType returns the event type name
func (e *PurchasePaymentAppliedEvent) EventType() string {
	return "PurchasePaymentApplied"
}

// NewPurchasePaymentAppliedEvent creates a new PurchasePaymentAppliedEvent
func NewPurchasePaymentAppliedEvent(p *Purchase, amount valueobject.Money) *PurchasePaymentAppliedEvent {
	return &PurchasePaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchasePaymentApplied", "Purchase", p.ID, p.TenantID),
		PurchaseID:      p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		CustomerID:      p.CustomerID,
		Amount:          amount.Amount(),
		AmountPaid:      p.AmountPaid,
		Outstanding:     p.OutstandingBalance,
	}
}

// PurchaseCompletedEvent is raised when the obligation is fully settled.
// Consumers use it to schedule delivery and notify the customer.
type PurchaseCompletedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CompletedAt    time.Time       `json:"completed_at"`
}

// EventType returns the event type name
func (e *PurchaseCompletedEvent) EventType() string {
	return "PurchaseCompleted"
}

// NewPurchaseCompletedEvent creates a new PurchaseCompletedEvent
func NewPurchaseCompletedEvent(p *Purchase) *PurchaseCompletedEvent {
	completedAt := time.Now()
	if p.CompletedAt != nil {
		completedAt = *p.CompletedAt
	}
	return &PurchaseCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseCompleted", "Purchase", p.ID, p.TenantID),
		PurchaseID:      p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		CustomerID:      p.CustomerID,
		TotalAmount:     p.TotalAmount,
		CompletedAt:     completedAt,
	}
}

// PurchaseOverdueEvent is raised when a purchase passes its due date unpaid
type PurchaseOverdueEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	Outstanding    decimal.Decimal `json:"outstanding_balance"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
}

// EventType returns the event type name
func (e *PurchaseOverdueEvent) EventType() string {
	return "PurchaseOverdue"
}

// NewPurchaseOverdueEvent creates a new PurchaseOverdueEvent
func NewPurchaseOverdueEvent(p *Purchase) *PurchaseOverdueEvent {
	return &PurchaseOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseOverdue", "Purchase", p.ID, p.TenantID),
		PurchaseID:      p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		CustomerID:      p.CustomerID,
		Outstanding:     p.OutstandingBalance,
		DueDate:         p.DueDate,
	}
}

// PurchaseDefaultedEvent is raised when an overdue purchase is written down
type PurchaseDefaultedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	Outstanding    decimal.Decimal `json:"outstanding_balance"`
}

// EventType returns the event type name
func (e *PurchaseDefaultedEvent) EventType() string {
	return "PurchaseDefaulted"
}

// NewPurchaseDefaultedEvent creates a new PurchaseDefaultedEvent
func NewPurchaseDefaultedEvent(p *Purchase) *PurchaseDefaultedEvent {
	return &PurchaseDefaultedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseDefaulted", "Purchase", p.ID, p.TenantID),
		PurchaseID:      p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		CustomerID:      p.CustomerID,
		Outstanding:     p.OutstandingBalance,
	}
}
