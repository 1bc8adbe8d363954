package shared

import (
	"context"

	"github.com/google/uuid"
)

// TransactionManager runs fn inside one atomic store transaction.
// Repository writes made with the context passed to fn commit or roll
// back together; a nested call joins the caller's transaction instead of
// opening a new one. Confirm paths that move a balance and persist the
// ledger row for it must go through this so neither write can land alone.
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditSink receives audit records for financial mutations. Writes are
// fire-and-forget: implementations must never let an audit failure roll
// back or fail the operation being audited.
type AuditSink interface {
	Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]any)
}

// StockLedger is the external inventory collaborator. Stock is tracked per
// shop; availability checks and decrements are shop-scoped.
type StockLedger interface {
	Check(ctx context.Context, shopID, productID uuid.UUID, qty int) (bool, error)
	Decrement(ctx context.Context, shopID, productID uuid.UUID, qty int) error
}

// NotificationSink delivers customer-facing notifications (SMS/email).
// Delivery is owned by an external service; failures are reported, not fatal.
type NotificationSink interface {
	Send(ctx context.Context, customerID uuid.UUID, message string) error
}
