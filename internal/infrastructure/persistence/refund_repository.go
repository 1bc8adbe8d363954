package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

// GormRefundRepository implements ledger.RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// FindByPurchase returns all refunds recorded against a purchase
func (r *GormRefundRepository) FindByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) ([]ledger.Refund, error) {
	var refunds []ledger.Refund
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND purchase_id = ?", tenantID, purchaseID).
		Order("refunded_at ASC").
		Find(&refunds).Error; err != nil {
		return nil, err
	}
	return refunds, nil
}

// Save creates a refund record
func (r *GormRefundRepository) Save(ctx context.Context, refund *ledger.Refund) error {
	return dbc(ctx, r.db).Save(refund).Error
}

// Ensure GormRefundRepository implements RefundRepository
var _ ledger.RefundRepository = (*GormRefundRepository)(nil)
