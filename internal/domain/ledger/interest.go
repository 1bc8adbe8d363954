package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// InterestType represents how interest accrues over the tenor
type InterestType string

const (
	// InterestTypeFlat charges rate once on the subtotal regardless of tenor
	InterestTypeFlat InterestType = "FLAT"
	// InterestTypeMonthly charges rate per 30-day month, pro-rated by tenor
	InterestTypeMonthly InterestType = "MONTHLY"
)

// IsValid checks if the interest type is valid
func (t InterestType) IsValid() bool {
	return t == InterestTypeFlat || t == InterestTypeMonthly
}

// daysPerMonth is the accrual basis for MONTHLY interest
var daysPerMonth = decimal.NewFromInt(30)

// InterestPolicy is the tenant-level policy governing non-cash purchases
type InterestPolicy struct {
	Rate         decimal.Decimal // e.g. 0.10 for 10%
	Type         InterestType
	MaxTenorDays int
}

// NewInterestPolicy creates a validated interest policy
func NewInterestPolicy(rate decimal.Decimal, interestType InterestType, maxTenorDays int) (*InterestPolicy, error) {
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Interest rate cannot be negative")
	}
	if !interestType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INTEREST_TYPE", "Interest type must be FLAT or MONTHLY")
	}
	if maxTenorDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TENOR", "Maximum tenor must be positive")
	}
	return &InterestPolicy{
		Rate:         rate,
		Type:         interestType,
		MaxTenorDays: maxTenorDays,
	}, nil
}

// InterestFor computes the interest on a subtotal for the given tenor.
// FLAT: subtotal * rate. MONTHLY: subtotal * rate * (tenorDays / 30).
// The result is exact; callers round at the persistence boundary.
func (p *InterestPolicy) InterestFor(subtotal valueobject.Money, tenorDays int) valueobject.Money {
	switch p.Type {
	case InterestTypeMonthly:
		months := decimal.NewFromInt(int64(tenorDays)).Div(daysPerMonth)
		return subtotal.Multiply(p.Rate).Multiply(months)
	default:
		return subtotal.Multiply(p.Rate)
	}
}
