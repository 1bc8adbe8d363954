package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// GormPurchaseRepository implements ledger.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Purchase, error) {
	var purchase ledger.Purchase
	if err := dbc(ctx, r.db).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByIDForTenant finds a purchase by ID within a tenant
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Purchase, error) {
	var purchase ledger.Purchase
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByPurchaseNumber finds a purchase by its human-readable number
func (r *GormPurchaseRepository) FindByPurchaseNumber(ctx context.Context, tenantID uuid.UUID, purchaseNumber string) (*ledger.Purchase, error) {
	var purchase ledger.Purchase
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND purchase_number = ?", tenantID, strings.ToUpper(purchaseNumber)).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAllForTenant finds all purchases for a tenant matching the filter
func (r *GormPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PurchaseFilter) ([]ledger.Purchase, error) {
	var purchases []ledger.Purchase
	query := r.applyFilter(dbc(ctx, r.db).Model(&ledger.Purchase{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindByCustomer finds purchases belonging to a customer
func (r *GormPurchaseRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter ledger.PurchaseFilter) ([]ledger.Purchase, error) {
	filter.CustomerID = &customerID
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// FindOpenForTenant returns purchases that still carry an outstanding balance
func (r *GormPurchaseRepository) FindOpenForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Purchase, error) {
	var purchases []ledger.Purchase
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND status IN ?", tenantID, []ledger.PurchaseStatus{
			ledger.PurchaseStatusActive, ledger.PurchaseStatusOverdue, ledger.PurchaseStatusDefaulted,
		}).
		Order("created_at ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindDueBefore returns ACTIVE purchases whose due date lies before asOf
func (r *GormPurchaseRepository) FindDueBefore(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]ledger.Purchase, error) {
	var purchases []ledger.Purchase
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND status = ? AND due_date < ?", tenantID, ledger.PurchaseStatusActive, asOf).
		Order("due_date ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindOverdueSince returns OVERDUE purchases past the grace period
func (r *GormPurchaseRepository) FindOverdueSince(ctx context.Context, tenantID uuid.UUID, asOf time.Time, graceDays int) ([]ledger.Purchase, error) {
	cutoff := asOf.AddDate(0, 0, -graceDays)
	var purchases []ledger.Purchase
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND status = ? AND due_date < ?", tenantID, ledger.PurchaseStatusOverdue, cutoff).
		Order("due_date ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *ledger.Purchase) error {
	return dbc(ctx, r.db).Save(purchase).Error
}

// SaveWithLock saves a purchase with optimistic locking (version check).
// All balance-mutating writes go through this path.
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *ledger.Purchase) error {
	result := dbc(ctx, r.db).
		Model(&ledger.Purchase{}).
		Where("id = ? AND version = ?", purchase.ID, purchase.Version-1).
		Select("*").
		Updates(purchase)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountForTenant counts purchases for a tenant matching the filter
func (r *GormPurchaseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PurchaseFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbc(ctx, r.db).Model(&ledger.Purchase{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOutstandingForTenant sums the outstanding balance over all open purchases
func (r *GormPurchaseRepository) SumOutstandingForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbc(ctx, r.db).
		Model(&ledger.Purchase{}).
		Select("COALESCE(SUM(outstanding_balance), 0)").
		Where("tenant_id = ? AND status <> ?", tenantID, ledger.PurchaseStatusCompleted).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// SumOutstandingByCollector sums the outstanding balance of open purchases
// whose customer is assigned to the given collector
func (r *GormPurchaseRepository) SumOutstandingByCollector(ctx context.Context, tenantID, collectorID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbc(ctx, r.db).
		Model(&ledger.Purchase{}).
		Select("COALESCE(SUM(purchases.outstanding_balance), 0)").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Where("purchases.tenant_id = ? AND purchases.status <> ? AND customers.assigned_collector_id = ?",
			tenantID, ledger.PurchaseStatusCompleted, collectorID).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// GeneratePurchaseNumber produces the next sequential number for today,
// formatted HP-YYYYMMDD-NNNNN
func (r *GormPurchaseRepository) GeneratePurchaseNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	var count int64
	if err := dbc(ctx, r.db).
		Model(&ledger.Purchase{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, today).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count today's purchases: %w", err)
	}
	return fmt.Sprintf("HP-%s-%05d", today.Format("20060102"), count+1), nil
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter ledger.PurchaseFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormPurchaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.PurchaseFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("purchase_type = ?", *filter.Type)
	}
	if filter.Overdue != nil {
		if *filter.Overdue {
			query = query.Where("status = ?", ledger.PurchaseStatusOverdue)
		} else {
			query = query.Where("status <> ?", ledger.PurchaseStatusOverdue)
		}
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at < ?", *filter.ToDate)
	}
	if filter.Search != "" {
		query = query.Where("purchase_number ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ ledger.PurchaseRepository = (*GormPurchaseRepository)(nil)
