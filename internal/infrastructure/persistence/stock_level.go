package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// StockLevel tracks on-hand quantity of one product at one shop
type StockLevel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_shop_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_shop_product,priority:2"`
	Quantity  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// GormStockLedger implements shared.StockLedger against the stock_levels
// table. Decrement uses a conditional UPDATE so concurrent sales cannot
// drive quantity negative.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GormStockLedger
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Check reports whether the shop holds at least qty units of the product
func (l *GormStockLedger) Check(ctx context.Context, shopID, productID uuid.UUID, qty int) (bool, error) {
	if qty <= 0 {
		return false, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	var level StockLevel
	if err := l.db.WithContext(ctx).
		Where("shop_id = ? AND product_id = ?", shopID, productID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return level.Quantity >= qty, nil
}

// Decrement atomically reduces the shop's stock by qty
func (l *GormStockLedger) Decrement(ctx context.Context, shopID, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	result := l.db.WithContext(ctx).
		Model(&StockLevel{}).
		Where("shop_id = ? AND product_id = ? AND quantity >= ?", shopID, productID, qty).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock at shop to cover the sale")
	}
	return nil
}

// Ensure GormStockLedger implements StockLedger
var _ shared.StockLedger = (*GormStockLedger)(nil)
