package commission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of a commission record
type Status string

const (
	StatusPending  Status = "PENDING"  // Calculated, awaiting manager approval
	StatusApproved Status = "APPROVED" // Approved for payout
	StatusPaid     Status = "PAID"     // Paid out to the collector
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid:
		return true
	}
	return false
}

// Commission represents a collector's earned commission for a collection
// period. The amount is frozen at calculation time: later payment
// confirmations in the same period require a fresh run, they never mutate an
// existing record.
type Commission struct {
	shared.TenantAggregateRoot
	CollectorID  uuid.UUID       `json:"collector_id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	BaseAmount   decimal.Decimal `json:"base_amount"` // Confirmed collections in the period
	Rate         decimal.Decimal `json:"rate"`        // e.g. 0.05 for 5%
	Amount       decimal.Decimal `json:"amount"`      // base * rate, rounded to currency
	PaymentCount int             `json:"payment_count"`
	Status       Status          `json:"status"`
	ApprovedByID *uuid.UUID      `json:"approved_by_id"`
	ApprovedAt   *time.Time      `json:"approved_at"`
	PaidByID     *uuid.UUID      `json:"paid_by_id"`
	PaidAt       *time.Time      `json:"paid_at"`
	PaidRef      string          `json:"paid_ref,omitempty"`
}

// TableName returns the table name for GORM
func (Commission) TableName() string {
	return "commissions"
}

// NewCommission calculates a commission record for a collector's confirmed
// collections over a period.
func NewCommission(
	tenantID, collectorID uuid.UUID,
	periodStart, periodEnd time.Time,
	baseAmount valueobject.Money,
	rate decimal.Decimal,
	paymentCount int,
) (*Commission, error) {
	if collectorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}
	if !periodEnd.After(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after period start")
	}
	if baseAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Base amount cannot be negative")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Commission rate must be between 0 and 1")
	}
	if paymentCount < 0 {
		return nil, shared.NewDomainError("INVALID_COUNT", "Payment count cannot be negative")
	}

	amount := baseAmount.Multiply(rate).RoundCurrency()

	c := &Commission{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CollectorID:         collectorID,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		BaseAmount:          baseAmount.Amount(),
		Rate:                rate,
		Amount:              amount.Amount(),
		PaymentCount:        paymentCount,
		Status:              StatusPending,
	}

	c.AddDomainEvent(NewCommissionCalculatedEvent(c))

	return c, nil
}

// Approve transitions PENDING -> APPROVED
func (c *Commission) Approve(approvedBy uuid.UUID) error {
	if c.Status != StatusPending {
		return shared.NewDomainErrorf("STATE_CONFLICT", "Cannot approve commission in %s status", c.Status)
	}
	if approvedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_STAFF", "Approving staff ID cannot be empty")
	}

	now := time.Now()
	c.Status = StatusApproved
	c.ApprovedByID = &approvedBy
	c.ApprovedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	return nil
}

// MarkPaid transitions APPROVED -> PAID with an optional payout reference
func (c *Commission) MarkPaid(paidBy uuid.UUID, reference string) error {
	if c.Status != StatusApproved {
		return shared.NewDomainErrorf("STATE_CONFLICT", "Cannot pay commission in %s status", c.Status)
	}
	if paidBy == uuid.Nil {
		return shared.NewDomainError("INVALID_STAFF", "Paying staff ID cannot be empty")
	}

	now := time.Now()
	c.Status = StatusPaid
	c.PaidByID = &paidBy
	c.PaidAt = &now
	c.PaidRef = reference
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCommissionPaidEvent(c))

	return nil
}

// Overlaps returns true when this commission's period intersects the given
// period. Two commissions for the same collector may never overlap.
func (c *Commission) Overlaps(start, end time.Time) bool {
	return c.PeriodStart.Before(end) && start.Before(c.PeriodEnd)
}

// GetAmountMoney returns the commission amount as Money
func (c *Commission) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(c.Amount)
}

// IsPending returns true while the commission awaits approval
func (c *Commission) IsPending() bool {
	return c.Status == StatusPending
}
