package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter represents query filter options for commissions
type Filter struct {
	CollectorID *uuid.UUID
	Status      *Status
	FromDate    *time.Time
	ToDate      *time.Time
	Page        int
	PageSize    int
}

// Repository is the persistence port for Commission aggregates
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Commission, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Commission, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Commission, error)
	FindByCollector(ctx context.Context, tenantID, collectorID uuid.UUID, filter Filter) ([]Commission, error)
	// FindOverlapping returns commissions for the collector whose period
	// intersects [start, end). Used to reject double commission runs.
	FindOverlapping(ctx context.Context, tenantID, collectorID uuid.UUID, start, end time.Time) ([]Commission, error)
	Save(ctx context.Context, commission *Commission) error
	SaveWithLock(ctx context.Context, commission *Commission) error
}
