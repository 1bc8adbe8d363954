package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/collections"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// AnalyticsService derives collections insight from the purchase and payment
// ledgers. Every operation is read-only.
type AnalyticsService struct {
	purchaseRepo ledger.PurchaseRepository
	paymentRepo  ledger.PaymentRepository
	logger       *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	purchaseRepo ledger.PurchaseRepository,
	paymentRepo ledger.PaymentRepository,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		logger:       logger,
	}
}

// AgingReport buckets every open purchase's outstanding balance by
// delinquency age as of the given instant
func (s *AnalyticsService) AgingReport(
	ctx context.Context,
	auth shared.AuthContext,
	asOf time.Time,
) (*collections.AgingReport, error) {
	open, err := s.purchaseRepo.FindOpenForTenant(ctx, auth.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open purchases: %w", err)
	}

	report := collections.BuildAgingReport(asOf, open)
	return &report, nil
}

// RiskScore scores one purchase's bad-debt risk as of the given instant
func (s *AnalyticsService) RiskScore(
	ctx context.Context,
	auth shared.AuthContext,
	purchaseID uuid.UUID,
	asOf time.Time,
) (decimal.Decimal, error) {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, auth.TenantID, purchaseID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return decimal.Zero, shared.NewDomainError("PURCHASE_NOT_FOUND", "Purchase not found")
	}
	return collections.PurchaseRiskScore(purchase, asOf), nil
}

// CollectorEfficiency is one collector's row in the efficiency report
type CollectorEfficiency struct {
	CollectorID uuid.UUID       `json:"collector_id"`
	Collected   decimal.Decimal `json:"collected"`
	Assigned    decimal.Decimal `json:"assigned_outstanding"`
	Efficiency  decimal.Decimal `json:"efficiency_pct"`
	Payments    int             `json:"payments"`
}

// CollectionEfficiency computes collected/assigned per collector over a
// period: confirmed payments they recorded versus the outstanding balance of
// the customers currently assigned to them.
func (s *AnalyticsService) CollectionEfficiency(
	ctx context.Context,
	auth shared.AuthContext,
	periodStart, periodEnd time.Time,
) ([]CollectorEfficiency, error) {
	if !periodEnd.After(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after period start")
	}

	totals, err := s.paymentRepo.SumConfirmedByCollector(ctx, auth.TenantID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate collections: %w", err)
	}

	out := make([]CollectorEfficiency, 0, len(totals))
	for _, total := range totals {
		assigned, err := s.purchaseRepo.SumOutstandingByCollector(ctx, auth.TenantID, total.CollectorID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum assigned outstanding: %w", err)
		}
		out = append(out, CollectorEfficiency{
			CollectorID: total.CollectorID,
			Collected:   total.Total,
			Assigned:    assigned,
			Efficiency:  collections.CollectionEfficiency(total.Total, assigned),
			Payments:    total.Payments,
		})
	}
	return out, nil
}

// TotalOutstanding returns the tenant's total outstanding balance
func (s *AnalyticsService) TotalOutstanding(
	ctx context.Context,
	auth shared.AuthContext,
) (decimal.Decimal, error) {
	sum, err := s.purchaseRepo.SumOutstandingForTenant(ctx, auth.TenantID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding: %w", err)
	}
	return sum, nil
}
