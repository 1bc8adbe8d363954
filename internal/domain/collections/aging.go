package collections

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

// AgingBucket identifies a delinquency band
type AgingBucket string

const (
	BucketCurrent AgingBucket = "CURRENT" // Not yet due, no due date, or up to 30 days overdue
	Bucket31To60  AgingBucket = "31_60"
	Bucket61To90  AgingBucket = "61_90"
	BucketOver90  AgingBucket = "OVER_90"
)

// BucketFor returns the aging bucket for a delinquency of the given days
func BucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 30:
		return BucketCurrent
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// AgingTotals holds bucketed outstanding balances
type AgingTotals struct {
	Current decimal.Decimal `json:"current"`
	Days31  decimal.Decimal `json:"days_31_60"`
	Days61  decimal.Decimal `json:"days_61_90"`
	Over90  decimal.Decimal `json:"over_90"`
}

// NewAgingTotals returns zeroed totals
func NewAgingTotals() AgingTotals {
	return AgingTotals{
		Current: decimal.Zero,
		Days31:  decimal.Zero,
		Days61:  decimal.Zero,
		Over90:  decimal.Zero,
	}
}

// add accumulates an outstanding amount into the right bucket
func (t *AgingTotals) add(bucket AgingBucket, amount decimal.Decimal) {
	switch bucket {
	case Bucket31To60:
		t.Days31 = t.Days31.Add(amount)
	case Bucket61To90:
		t.Days61 = t.Days61.Add(amount)
	case BucketOver90:
		t.Over90 = t.Over90.Add(amount)
	default:
		t.Current = t.Current.Add(amount)
	}
}

// Total returns the sum of all buckets
func (t AgingTotals) Total() decimal.Decimal {
	return t.Current.Add(t.Days31).Add(t.Days61).Add(t.Over90)
}

// CustomerAging is one customer's row in the aging report
type CustomerAging struct {
	CustomerID uuid.UUID   `json:"customer_id"`
	Purchases  int         `json:"purchases"`
	Totals     AgingTotals `json:"totals"`
}

// AgingReport buckets outstanding balances by delinquency age
type AgingReport struct {
	AsOf      time.Time       `json:"as_of"`
	Customers []CustomerAging `json:"customers"`
	Totals    AgingTotals     `json:"totals"`
}

// BuildAgingReport buckets every open purchase's outstanding balance by how
// far past due it is as of the given instant. Purchases without a due date
// land in CURRENT. Pure: reads purchase state, touches nothing.
//
// The grand total always ties out: Totals.Total() equals the sum of
// outstanding balances over the input purchases.
func BuildAgingReport(asOf time.Time, purchases []ledger.Purchase) AgingReport {
	report := AgingReport{
		AsOf:   asOf,
		Totals: NewAgingTotals(),
	}

	byCustomer := make(map[uuid.UUID]*CustomerAging)
	order := make([]uuid.UUID, 0)

	for i := range purchases {
		p := &purchases[i]
		if !p.Status.IsOpen() {
			continue
		}

		bucket := BucketFor(p.DaysOverdue(asOf))

		row, ok := byCustomer[p.CustomerID]
		if !ok {
			row = &CustomerAging{CustomerID: p.CustomerID, Totals: NewAgingTotals()}
			byCustomer[p.CustomerID] = row
			order = append(order, p.CustomerID)
		}
		row.Purchases++
		row.Totals.add(bucket, p.OutstandingBalance)
		report.Totals.add(bucket, p.OutstandingBalance)
	}

	report.Customers = make([]CustomerAging, 0, len(order))
	for _, id := range order {
		report.Customers = append(report.Customers, *byCustomer[id])
	}

	return report
}
