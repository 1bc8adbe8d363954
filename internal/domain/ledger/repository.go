package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseFilter represents query filter options for purchases
type PurchaseFilter struct {
	CustomerID  *uuid.UUID
	ShopID      *uuid.UUID
	Status      *PurchaseStatus
	Type        *PurchaseType
	Overdue     *bool
	FromDate    *time.Time
	ToDate      *time.Time
	Search      string
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
}

// PaymentFilter represents query filter options for payments
type PaymentFilter struct {
	PurchaseID  *uuid.UUID
	CustomerID  *uuid.UUID
	CollectorID *uuid.UUID
	Status      *PaymentStatus
	Method      *PaymentMethod
	FromDate    *time.Time
	ToDate      *time.Time
	Page        int
	PageSize    int
}

// CollectorTotal is an aggregation row: confirmed collections per collector
type CollectorTotal struct {
	CollectorID uuid.UUID
	Total       decimal.Decimal
	Payments    int
}

// PurchaseRepository is the persistence port for Purchase aggregates
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	FindByPurchaseNumber(ctx context.Context, tenantID uuid.UUID, purchaseNumber string) (*Purchase, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseFilter) ([]Purchase, error)
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter PurchaseFilter) ([]Purchase, error)
	// FindOpenForTenant returns purchases that still carry an outstanding
	// balance (ACTIVE, OVERDUE or DEFAULTED), ordered by creation time.
	FindOpenForTenant(ctx context.Context, tenantID uuid.UUID) ([]Purchase, error)
	// FindDueBefore returns ACTIVE purchases whose due date lies before the
	// given instant. Input for the overdue sweep.
	FindDueBefore(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]Purchase, error)
	// FindOverdueSince returns OVERDUE purchases whose due date lies more
	// than graceDays before the given instant. Input for the default sweep.
	FindOverdueSince(ctx context.Context, tenantID uuid.UUID, asOf time.Time, graceDays int) ([]Purchase, error)
	Save(ctx context.Context, purchase *Purchase) error
	// SaveWithLock saves using an optimistic version check; returns
	// shared.ErrConcurrencyConflict semantics when the row moved underneath.
	SaveWithLock(ctx context.Context, purchase *Purchase) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseFilter) (int64, error)
	SumOutstandingForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
	// SumOutstandingByCollector sums the outstanding balance of open
	// purchases whose customer is assigned to the given collector.
	SumOutstandingByCollector(ctx context.Context, tenantID, collectorID uuid.UUID) (decimal.Decimal, error)
	GeneratePurchaseNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// PaymentRepository is the persistence port for the append-only payment ledger
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) ([]Payment, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) ([]Payment, error)
	FindPendingForTenant(ctx context.Context, tenantID uuid.UUID, filter PaymentFilter) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	// SumConfirmedByPurchase recomputes the confirmed-paid total from the
	// ledger alone, independent of the cached Purchase.AmountPaid.
	SumConfirmedByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (decimal.Decimal, error)
	// SumConfirmedByCollector aggregates confirmed collector payments in a
	// period. Input for commission calculation and collection efficiency.
	SumConfirmedByCollector(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time) ([]CollectorTotal, error)
	// SumConfirmedByShopMethodAndDay totals confirmed payments for one
	// shop/channel/day. Cross-checked against the daily cash summary.
	SumConfirmedByShopMethodAndDay(ctx context.Context, tenantID, shopID uuid.UUID, method PaymentMethod, day time.Time) (decimal.Decimal, error)
}

// RefundRepository is the persistence port for refund records
type RefundRepository interface {
	FindByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) ([]Refund, error)
	Save(ctx context.Context, refund *Refund) error
}
