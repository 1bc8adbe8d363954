package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safo-124/high-purchase-sub007/internal/domain/commission"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// GormCommissionRepository implements commission.Repository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// FindByID finds a commission by its ID
func (r *GormCommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	var com commission.Commission
	if err := dbc(ctx, r.db).First(&com, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &com, nil
}

// FindByIDForTenant finds a commission by ID within a tenant
func (r *GormCommissionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*commission.Commission, error) {
	var com commission.Commission
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&com).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &com, nil
}

// FindAllForTenant finds commissions for a tenant matching the filter
func (r *GormCommissionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter commission.Filter) ([]commission.Commission, error) {
	var coms []commission.Commission
	query := r.applyFilter(dbc(ctx, r.db).Model(&commission.Commission{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&coms).Error; err != nil {
		return nil, err
	}
	return coms, nil
}

// FindByCollector finds commissions belonging to a collector
func (r *GormCommissionRepository) FindByCollector(ctx context.Context, tenantID, collectorID uuid.UUID, filter commission.Filter) ([]commission.Commission, error) {
	filter.CollectorID = &collectorID
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// FindOverlapping returns commissions for the collector whose period
// intersects [start, end)
func (r *GormCommissionRepository) FindOverlapping(ctx context.Context, tenantID, collectorID uuid.UUID, start, end time.Time) ([]commission.Commission, error) {
	var coms []commission.Commission
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND collector_id = ? AND period_start < ? AND period_end > ?",
			tenantID, collectorID, end, start).
		Order("period_start ASC").
		Find(&coms).Error; err != nil {
		return nil, err
	}
	return coms, nil
}

// Save creates or updates a commission
func (r *GormCommissionRepository) Save(ctx context.Context, com *commission.Commission) error {
	return dbc(ctx, r.db).Save(com).Error
}

// SaveWithLock saves a commission with optimistic locking (version check)
func (r *GormCommissionRepository) SaveWithLock(ctx context.Context, com *commission.Commission) error {
	result := dbc(ctx, r.db).
		Model(&commission.Commission{}).
		Where("id = ? AND version = ?", com.ID, com.Version-1).
		Select("*").
		Updates(com)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormCommissionRepository) applyFilter(query *gorm.DB, filter commission.Filter) *gorm.DB {
	if filter.CollectorID != nil {
		query = query.Where("collector_id = ?", *filter.CollectorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("period_start >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("period_end <= ?", *filter.ToDate)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("period_start DESC")
}

// Ensure GormCommissionRepository implements Repository
var _ commission.Repository = (*GormCommissionRepository)(nil)
