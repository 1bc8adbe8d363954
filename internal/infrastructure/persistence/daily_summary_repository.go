package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/cashdesk"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// GormDailySummaryRepository implements cashdesk.Repository using GORM
type GormDailySummaryRepository struct {
	db *gorm.DB
}

// NewGormDailySummaryRepository creates a new GormDailySummaryRepository
func NewGormDailySummaryRepository(db *gorm.DB) *GormDailySummaryRepository {
	return &GormDailySummaryRepository{db: db}
}

// FindByID finds a daily summary by its ID
func (r *GormDailySummaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashdesk.DailySummary, error) {
	var summary cashdesk.DailySummary
	if err := dbc(ctx, r.db).First(&summary, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// FindByIDForTenant finds a daily summary by ID within a tenant
func (r *GormDailySummaryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*cashdesk.DailySummary, error) {
	var summary cashdesk.DailySummary
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// FindByShopChannelAndDay returns the summary for one shop/channel/day, nil
// when none was submitted yet
func (r *GormDailySummaryRepository) FindByShopChannelAndDay(ctx context.Context, tenantID, shopID uuid.UUID, channel cashdesk.Channel, day time.Time) (*cashdesk.DailySummary, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)

	var summary cashdesk.DailySummary
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND shop_id = ? AND channel = ? AND summary_date = ?",
			tenantID, shopID, channel, dayStart).
		First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// FindAllForTenant finds daily summaries for a tenant matching the filter
func (r *GormDailySummaryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter cashdesk.Filter) ([]cashdesk.DailySummary, error) {
	var summaries []cashdesk.DailySummary
	query := r.applyFilter(dbc(ctx, r.db).Model(&cashdesk.DailySummary{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Save creates or updates a daily summary
func (r *GormDailySummaryRepository) Save(ctx context.Context, summary *cashdesk.DailySummary) error {
	return dbc(ctx, r.db).Save(summary).Error
}

// SaveWithLock saves a daily summary with optimistic locking (version check)
func (r *GormDailySummaryRepository) SaveWithLock(ctx context.Context, summary *cashdesk.DailySummary) error {
	result := dbc(ctx, r.db).
		Model(&cashdesk.DailySummary{}).
		Where("id = ? AND version = ?", summary.ID, summary.Version-1).
		Select("*").
		Updates(summary)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormDailySummaryRepository) applyFilter(query *gorm.DB, filter cashdesk.Filter) *gorm.DB {
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}
	if filter.Channel != nil {
		query = query.Where("channel = ?", *filter.Channel)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("summary_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("summary_date < ?", *filter.ToDate)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("summary_date DESC")
}

// Ensure GormDailySummaryRepository implements Repository
var _ cashdesk.Repository = (*GormDailySummaryRepository)(nil)
