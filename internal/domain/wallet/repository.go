package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilter represents query filter options for wallet transactions
type TransactionFilter struct {
	CustomerID *uuid.UUID
	Type       *TransactionType
	Status     *TransactionStatus
	FromDate   *time.Time
	ToDate     *time.Time
	Page       int
	PageSize   int
}

// TransactionRepository is the persistence port for the wallet ledger
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter TransactionFilter) ([]Transaction, error)
	FindPendingForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) ([]Transaction, error)
	Save(ctx context.Context, tx *Transaction) error
	// SumConfirmedByCustomer recomputes the wallet balance from the ledger
	// alone. Reconciliation cross-checks it against Customer.WalletBalance.
	SumConfirmedByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) (int64, error)
}
