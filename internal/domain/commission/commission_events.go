package commission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// CommissionCalculatedEvent is raised when a commission run produces a record
type CommissionCalculatedEvent struct {
	shared.BaseDomainEvent
	CommissionID uuid.UUID       `json:"commission_id"`
	CollectorID  uuid.UUID       `json:"collector_id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	Amount       decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *CommissionCalculatedEvent) EventType() string {
	return "CommissionCalculated"
}

// NewCommissionCalculatedEvent creates a new CommissionCalculatedEvent
func NewCommissionCalculatedEvent(c *Commission) *CommissionCalculatedEvent {
	return &CommissionCalculatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionCalculated", "Commission", c.ID, c.TenantID),
		CommissionID:    c.ID,
		CollectorID:     c.CollectorID,
		PeriodStart:     c.PeriodStart,
		PeriodEnd:       c.PeriodEnd,
		Amount:          c.Amount,
	}
}

// CommissionPaidEvent is raised when a commission is paid out
type CommissionPaidEvent struct {
	shared.BaseDomainEvent
	CommissionID uuid.UUID       `json:"commission_id"`
	CollectorID  uuid.UUID       `json:"collector_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// EventType returns the event type name
func (e *CommissionPaidEvent) EventType() string {
	return "CommissionPaid"
}

// NewCommissionPaidEvent creates a new CommissionPaidEvent
func NewCommissionPaidEvent(c *Commission) *CommissionPaidEvent {
	return &CommissionPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionPaid", "Commission", c.ID, c.TenantID),
		CommissionID:    c.ID,
		CollectorID:     c.CollectorID,
		Amount:          c.Amount,
	}
}
