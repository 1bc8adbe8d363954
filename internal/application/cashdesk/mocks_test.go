package cashdesk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/safo-124/high-purchase-sub007/internal/domain/cashdesk"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashdesk.DailySummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashdesk.DailySummary), args.Error(1)
}

func (m *MockSummaryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*cashdesk.DailySummary, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashdesk.DailySummary), args.Error(1)
}

func (m *MockSummaryRepository) FindByShopChannelAndDay(ctx context.Context, tenantID, shopID uuid.UUID, channel cashdesk.Channel, day time.Time) (*cashdesk.DailySummary, error) {
	args := m.Called(ctx, tenantID, shopID, channel, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashdesk.DailySummary), args.Error(1)
}

func (m *MockSummaryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter cashdesk.Filter) ([]cashdesk.DailySummary, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]cashdesk.DailySummary), args.Error(1)
}

func (m *MockSummaryRepository) Save(ctx context.Context, summary *cashdesk.DailySummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryRepository) SaveWithLock(ctx context.Context, summary *cashdesk.DailySummary) error {
	args := m.Called(ctx, summary)
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

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]any) {
	m.Called(ctx, actorID, action, entityType, entityID, metadata)
}
