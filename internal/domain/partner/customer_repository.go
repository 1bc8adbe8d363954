package partner

import (
	"context"

	"github.com/google/uuid"
)

// CustomerFilter represents query filter options for customers
type CustomerFilter struct {
	Status      *CustomerStatus
	CollectorID *uuid.UUID
	Search      string
	Page        int
	PageSize    int
}

// CustomerRepository is the persistence port for Customer aggregates
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Customer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter CustomerFilter) ([]Customer, error)
	FindByCollector(ctx context.Context, tenantID, collectorID uuid.UUID) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	// SaveWithLock saves using an optimistic version check; wallet balance
	// writes always go through this path.
	SaveWithLock(ctx context.Context, customer *Customer) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter CustomerFilter) (int64, error)
}
