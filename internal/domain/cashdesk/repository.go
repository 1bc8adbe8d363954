package cashdesk

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter represents query filter options for daily summaries
type Filter struct {
	ShopID   *uuid.UUID
	Channel  *Channel
	Status   *SummaryStatus
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PageSize int
}

// Repository is the persistence port for DailySummary aggregates
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DailySummary, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*DailySummary, error)
	// FindByShopChannelAndDay returns the summary for one shop/channel/day,
	// nil when none was submitted yet. One summary per triple.
	FindByShopChannelAndDay(ctx context.Context, tenantID, shopID uuid.UUID, channel Channel, day time.Time) (*DailySummary, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]DailySummary, error)
	Save(ctx context.Context, summary *DailySummary) error
	SaveWithLock(ctx context.Context, summary *DailySummary) error
}
