package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM.
// Payments are append-only: there is no delete path.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	var payment ledger.Payment
	if err := dbc(ctx, r.db).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// FindByIDForTenant finds a payment by ID within a tenant
func (r *GormPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Payment, error) {
	var payment ledger.Payment
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// FindByPurchase returns all payments recorded against a purchase
func (r *GormPaymentRepository) FindByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) ([]ledger.Payment, error) {
	var payments []ledger.Payment
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND purchase_id = ?", tenantID, purchaseID).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindAllForTenant finds payments for a tenant matching the filter
func (r *GormPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PaymentFilter) ([]ledger.Payment, error) {
	var payments []ledger.Payment
	query := r.applyFilter(dbc(ctx, r.db).Model(&ledger.Payment{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindPendingForTenant returns payments awaiting confirmation
func (r *GormPaymentRepository) FindPendingForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PaymentFilter) ([]ledger.Payment, error) {
	pending := ledger.PaymentStatusPending
	filter.Status = &pending
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	return dbc(ctx, r.db).Save(payment).Error
}

// SumConfirmedByPurchase recomputes the confirmed-paid total from the ledger
func (r *GormPaymentRepository) SumConfirmedByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbc(ctx, r.db).
		Model(&ledger.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND purchase_id = ? AND status = ?", tenantID, purchaseID, ledger.PaymentStatusConfirmed).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// collectorTotalRow is the scan target for the per-collector aggregation
type collectorTotalRow struct {
	CollectorID uuid.UUID
	Total       decimal.Decimal
	Payments    int
}

// SumConfirmedByCollector aggregates confirmed collector payments in a period
func (r *GormPaymentRepository) SumConfirmedByCollector(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time) ([]ledger.CollectorTotal, error) {
	var rows []collectorTotalRow
	if err := dbc(ctx, r.db).
		Model(&ledger.Payment{}).
		Select("collector_id, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS payments").
		Where("tenant_id = ? AND status = ? AND collector_id IS NOT NULL AND confirmed_at >= ? AND confirmed_at < ?",
			tenantID, ledger.PaymentStatusConfirmed, periodStart, periodEnd).
		Group("collector_id").
		Order("collector_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]ledger.CollectorTotal, len(rows))
	for i, row := range rows {
		totals[i] = ledger.CollectorTotal{
			CollectorID: row.CollectorID,
			Total:       row.Total,
			Payments:    row.Payments,
		}
	}
	return totals, nil
}

// SumConfirmedByShopMethodAndDay totals confirmed payments for one
// shop/method/day. The daily cash summary is cross-checked against it.
func (r *GormPaymentRepository) SumConfirmedByShopMethodAndDay(ctx context.Context, tenantID, shopID uuid.UUID, method ledger.PaymentMethod, day time.Time) (decimal.Decimal, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var sum decimal.NullDecimal
	if err := dbc(ctx, r.db).
		Model(&ledger.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND shop_id = ? AND method = ? AND status = ? AND confirmed_at >= ? AND confirmed_at < ?",
			tenantID, shopID, method, ledger.PaymentStatusConfirmed, dayStart, dayEnd).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter ledger.PaymentFilter) *gorm.DB {
	if filter.PurchaseID != nil {
		query = query.Where("purchase_id = ?", *filter.PurchaseID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.CollectorID != nil {
		query = query.Where("collector_id = ?", *filter.CollectorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Method != nil {
		query = query.Where("method = ?", *filter.Method)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at < ?", *filter.ToDate)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("created_at DESC")
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
