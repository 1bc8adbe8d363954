package partner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// CustomerCreatedEvent is raised when a customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// EventType returns the event type name
func (e *CustomerCreatedEvent) EventType() string {
	return "CustomerCreated"
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CustomerCreated", "Customer", c.ID, c.TenantID),
		CustomerID:      c.ID,
		Code:            c.Code,
		Name:            c.Name,
	}
}

// WalletBalanceChangedEvent is raised whenever the wallet balance moves
type WalletBalanceChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	OldBalance decimal.Decimal `json:"old_balance"`
	NewBalance decimal.Decimal `json:"new_balance"`
	Direction  string          `json:"direction"` // credit or debit
}

// EventType returns the event type name
func (e *WalletBalanceChangedEvent) EventType() string {
	return "WalletBalanceChanged"
}

// NewWalletBalanceChangedEvent creates a new WalletBalanceChangedEvent
func NewWalletBalanceChangedEvent(c *Customer, oldBalance, newBalance decimal.Decimal, direction string) *WalletBalanceChangedEvent {
	return &WalletBalanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("WalletBalanceChanged", "Customer", c.ID, c.TenantID),
		CustomerID:      c.ID,
		OldBalance:      oldBalance,
		NewBalance:      newBalance,
		Direction:       direction,
	}
}

// CollectorAssignedEvent is raised when a collector takes over an account
type CollectorAssignedEvent struct {
	shared.BaseDomainEvent
	CustomerID  uuid.UUID `json:"customer_id"`
	CollectorID uuid.UUID `json:"collector_id"`
}

// EventType returns the event type name
func (e *CollectorAssignedEvent) EventType() string {
	return "CollectorAssigned"
}

// NewCollectorAssignedEvent creates a new CollectorAssignedEvent
func NewCollectorAssignedEvent(c *Customer, collectorID uuid.UUID) *CollectorAssignedEvent {
	return &CollectorAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CollectorAssigned", "Customer", c.ID, c.TenantID),
		CustomerID:      c.ID,
		CollectorID:     collectorID,
	}
}
