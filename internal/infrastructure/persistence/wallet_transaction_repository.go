package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/wallet"
)

// GormWalletTransactionRepository implements wallet.TransactionRepository
// using GORM. The wallet ledger is append-only apart from the PENDING ->
// CONFIRMED/REJECTED transition.
type GormWalletTransactionRepository struct {
	db *gorm.DB
}

// NewGormWalletTransactionRepository creates a new GormWalletTransactionRepository
func NewGormWalletTransactionRepository(db *gorm.DB) *GormWalletTransactionRepository {
	return &GormWalletTransactionRepository{db: db}
}

// FindByID finds a wallet transaction by its ID
func (r *GormWalletTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*wallet.Transaction, error) {
	var tx wallet.Transaction
	if err := dbc(ctx, r.db).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// FindByIDForTenant finds a wallet transaction by ID within a tenant
func (r *GormWalletTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*wallet.Transaction, error) {
	var tx wallet.Transaction
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

// FindByCustomer returns a customer's wallet transactions matching the filter
func (r *GormWalletTransactionRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter wallet.TransactionFilter) ([]wallet.Transaction, error) {
	filter.CustomerID = &customerID
	var txs []wallet.Transaction
	query := r.applyFilter(dbc(ctx, r.db).Model(&wallet.Transaction{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindPendingForTenant returns deposits awaiting confirmation
func (r *GormWalletTransactionRepository) FindPendingForTenant(ctx context.Context, tenantID uuid.UUID, filter wallet.TransactionFilter) ([]wallet.Transaction, error) {
	pending := wallet.TransactionStatusPending
	filter.Status = &pending

	var txs []wallet.Transaction
	query := r.applyFilter(dbc(ctx, r.db).Model(&wallet.Transaction{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Save creates or updates a wallet transaction
func (r *GormWalletTransactionRepository) Save(ctx context.Context, tx *wallet.Transaction) error {
	return dbc(ctx, r.db).Save(tx).Error
}

// SumConfirmedByCustomer recomputes the wallet balance from the ledger alone.
// Deposits and refunds add, purchase debits subtract.
func (r *GormWalletTransactionRepository) SumConfirmedByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbc(ctx, r.db).
		Model(&wallet.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN transaction_type = ? THEN -amount ELSE amount END), 0)", wallet.TransactionTypePurchase).
		Where("tenant_id = ? AND customer_id = ? AND status = ?", tenantID, customerID, wallet.TransactionStatusConfirmed).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// CountForTenant counts wallet transactions matching the filter
func (r *GormWalletTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter wallet.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		dbc(ctx, r.db).Model(&wallet.Transaction{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormWalletTransactionRepository) applyFilter(query *gorm.DB, filter wallet.TransactionFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("created_at DESC")
}

func (r *GormWalletTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter wallet.TransactionFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Type != nil {
		query = query.Where("transaction_type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at < ?", *filter.ToDate)
	}
	return query
}

// Ensure GormWalletTransactionRepository implements TransactionRepository
var _ wallet.TransactionRepository = (*GormWalletTransactionRepository)(nil)
