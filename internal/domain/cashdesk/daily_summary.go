package cashdesk

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// Channel represents the payment channel a summary covers
type Channel string

const (
	ChannelCash        Channel = "CASH"
	ChannelMobileMoney Channel = "MOBILE_MONEY"
	ChannelBank        Channel = "BANK_TRANSFER"
)

// IsValid checks if the channel is valid
func (c Channel) IsValid() bool {
	switch c {
	case ChannelCash, ChannelMobileMoney, ChannelBank:
		return true
	}
	return false
}

// SummaryStatus represents the review state of a daily summary
type SummaryStatus string

const (
	SummaryStatusDraft       SummaryStatus = "DRAFT"       // Submitted by the cashier, awaiting review
	SummaryStatusVerified    SummaryStatus = "VERIFIED"    // Reviewer accepted the figures
	SummaryStatusDiscrepancy SummaryStatus = "DISCREPANCY" // Reviewer flagged a variance for investigation
)

// IsValid checks if the status is valid
func (s SummaryStatus) IsValid() bool {
	switch s {
	case SummaryStatusDraft, SummaryStatusVerified, SummaryStatusDiscrepancy:
		return true
	}
	return false
}

// IsTerminal returns true once the summary review is closed
func (s SummaryStatus) IsTerminal() bool {
	return s == SummaryStatusVerified || s == SummaryStatusDiscrepancy
}

// DailySummary represents one shop's end-of-day cash count for a channel.
// The variance is derived, never entered: closing - (opening + collected -
// expenses). A nonzero variance does not block submission; it is the
// reviewer's signal to investigate.
type DailySummary struct {
	shared.TenantAggregateRoot
	ShopID          uuid.UUID       `json:"shop_id"`
	SummaryDate     time.Time       `json:"summary_date"` // Date only, truncated to midnight UTC
	Channel         Channel         `json:"channel"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	Expenses        decimal.Decimal `json:"expenses"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
	Variance        decimal.Decimal `json:"variance"`
	Status          SummaryStatus   `json:"status"`
	SubmittedByID   uuid.UUID       `json:"submitted_by_id"`
	ReviewedByID    *uuid.UUID      `json:"reviewed_by_id"`
	ReviewedAt      *time.Time      `json:"reviewed_at"`
	ReviewNotes     string          `json:"review_notes,omitempty"`
}

// TableName returns the table name for GORM
func (DailySummary) TableName() string {
	return "daily_cash_summaries"
}

// NewDailySummaryInput carries the cashier's end-of-day figures
type NewDailySummaryInput struct {
	TenantID        uuid.UUID
	ShopID          uuid.UUID
	SummaryDate     time.Time
	Channel         Channel
	OpeningBalance  valueobject.Money
	CollectedAmount valueobject.Money
	Expenses        valueobject.Money
	ClosingBalance  valueobject.Money
	SubmittedBy     uuid.UUID
}

// NewDailySummary creates a DRAFT summary and computes the variance
func NewDailySummary(in NewDailySummaryInput) (*DailySummary, error) {
	if in.ShopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if in.SubmittedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Submitting staff ID cannot be empty")
	}
	if !in.Channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Channel must be CASH, MOBILE_MONEY or BANK_TRANSFER")
	}
	if in.SummaryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Summary date is required")
	}
	if in.OpeningBalance.IsNegative() || in.CollectedAmount.IsNegative() ||
		in.Expenses.IsNegative() || in.ClosingBalance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Summary amounts cannot be negative")
	}

	expected := in.OpeningBalance.Amount().
		Add(in.CollectedAmount.Amount()).
		Sub(in.Expenses.Amount())
	variance := in.ClosingBalance.Amount().Sub(expected)

	return &DailySummary{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(in.TenantID),
		ShopID:              in.ShopID,
		SummaryDate:         in.SummaryDate.UTC().Truncate(24 * time.Hour),
		Channel:             in.Channel,
		OpeningBalance:      in.OpeningBalance.Amount(),
		CollectedAmount:     in.CollectedAmount.Amount(),
		Expenses:            in.Expenses.Amount(),
		ClosingBalance:      in.ClosingBalance.Amount(),
		Variance:            variance,
		Status:              SummaryStatusDraft,
		SubmittedByID:       in.SubmittedBy,
	}, nil
}

// ExpectedClosing returns opening + collected - expenses
func (s *DailySummary) ExpectedClosing() decimal.Decimal {
	return s.OpeningBalance.Add(s.CollectedAmount).Sub(s.Expenses)
}

// HasVariance returns true when the counted closing misses the expected figure
func (s *DailySummary) HasVariance() bool {
	return !s.Variance.IsZero()
}

// Verify closes the review accepting the figures. The reviewer may not be
// the cashier who submitted.
func (s *DailySummary) Verify(reviewedBy uuid.UUID, notes string) error {
	if err := s.review(reviewedBy); err != nil {
		return err
	}

	now := time.Now()
	s.Status = SummaryStatusVerified
	s.ReviewedByID = &reviewedBy
	s.ReviewedAt = &now
	s.ReviewNotes = notes
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// FlagDiscrepancy closes the review marking the summary for investigation
func (s *DailySummary) FlagDiscrepancy(reviewedBy uuid.UUID, notes string) error {
	if err := s.review(reviewedBy); err != nil {
		return err
	}
	if notes == "" {
		return shared.NewDomainError("INVALID_REASON", "Discrepancy notes are required")
	}

	now := time.Now()
	s.Status = SummaryStatusDiscrepancy
	s.ReviewedByID = &reviewedBy
	s.ReviewedAt = &now
	s.ReviewNotes = notes
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

func (s *DailySummary) review(reviewedBy uuid.UUID) error {
	if s.Status.IsTerminal() {
		return shared.NewDomainErrorf("STATE_CONFLICT", "Summary is already %s", s.Status)
	}
	if reviewedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_STAFF", "Reviewing staff ID cannot be empty")
	}
	if reviewedBy == s.SubmittedByID {
		return shared.NewDomainError("PERMISSION_DENIED", "Cashier cannot review their own summary")
	}
	return nil
}

// GetVarianceMoney returns the variance as Money
func (s *DailySummary) GetVarianceMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(s.Variance)
}
