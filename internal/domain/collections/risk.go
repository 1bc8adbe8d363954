package collections

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

var (
	maxDelinquencyPoints = decimal.NewFromInt(40)
	ratioWeight          = decimal.NewFromInt(30)
	noPaymentPenalty     = decimal.NewFromInt(20)
	longOverduePenalty   = decimal.NewFromInt(10)
	maxScore             = decimal.NewFromInt(100)
	two                  = decimal.NewFromInt(2)
)

// RiskScore computes a bad-debt risk score in [0, 100] from raw inputs:
//
//	min(daysOverdue/2, 40)
//	+ (outstanding/total) * 30
//	+ 20 if no payment was ever confirmed
//	+ 10 if more than 90 days overdue
//
// Deterministic and pure: the same inputs always produce the same score.
func RiskScore(daysOverdue int, outstanding, total decimal.Decimal, paymentCount int) decimal.Decimal {
	score := decimal.NewFromInt(int64(daysOverdue)).Div(two)
	if score.GreaterThan(maxDelinquencyPoints) {
		score = maxDelinquencyPoints
	}

	if total.IsPositive() {
		score = score.Add(outstanding.Div(total).Mul(ratioWeight))
	}

	if paymentCount == 0 {
		score = score.Add(noPaymentPenalty)
	}
	if daysOverdue > 90 {
		score = score.Add(longOverduePenalty)
	}

	if score.GreaterThan(maxScore) {
		return maxScore
	}
	return score
}

// PurchaseRiskScore scores a purchase as of the given instant
func PurchaseRiskScore(p *ledger.Purchase, asOf time.Time) decimal.Decimal {
	return RiskScore(p.DaysOverdue(asOf), p.OutstandingBalance, p.TotalAmount, p.ConfirmedPayments)
}

// CollectionEfficiency returns collected/assigned as a percentage: confirmed
// collections in a period against the collector's currently-assigned
// outstanding balance. Zero assigned yields zero, not a division error.
func CollectionEfficiency(collected, assignedOutstanding decimal.Decimal) decimal.Decimal {
	if !assignedOutstanding.IsPositive() {
		return decimal.Zero
	}
	return collected.Div(assignedOutstanding).Mul(maxScore)
}
