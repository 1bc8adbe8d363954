package commission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/safo-124/high-purchase-sub007/internal/domain/commission"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*commission.Commission, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter commission.Filter) ([]commission.Commission, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindByCollector(ctx context.Context, tenantID, collectorID uuid.UUID, filter commission.Filter) ([]commission.Commission, error) {
	args := m.Called(ctx, tenantID, collectorID, filter)
	return args.Get(0).([]commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindOverlapping(ctx context.Context, tenantID, collectorID uuid.UUID, start, end time.Time) ([]commission.Commission, error) {
	args := m.Called(ctx, tenantID, collectorID, start, end)
	return args.Get(0).([]commission.Commission), args.Error(1)
}

func (m *MockCommissionRepository) Save(ctx context.Context, c *commission.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommissionRepository) SaveWithLock(ctx context.Context, c *commission.Commission) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) ([]ledger.Payment, error) {
	args := m.Called(ctx, tenantID, purchaseID)
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PaymentFilter) ([]ledger.Payment, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPendingForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PaymentFilter) ([]ledger.Payment, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumConfirmedByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, purchaseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SumConfirmedByCollector(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time) ([]ledger.CollectorTotal, error) {
	args := m.Called(ctx, tenantID, periodStart, periodEnd)
	return args.Get(0).([]ledger.CollectorTotal), args.Error(1)
}

func (m *MockPaymentRepository) SumConfirmedByShopMethodAndDay(ctx context.Context, tenantID, shopID uuid.UUID, method ledger.PaymentMethod, day time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, shopID, method, day)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]any) {
	m.Called(ctx, actorID, action, entityType, entityID, metadata)
}
