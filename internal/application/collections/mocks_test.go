package collections

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Purchase, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByPurchaseNumber(ctx context.Context, tenantID uuid.UUID, purchaseNumber string) (*ledger.Purchase, error) {
	args := m.Called(ctx, tenantID, purchaseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PurchaseFilter) ([]ledger.Purchase, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter ledger.PurchaseFilter) ([]ledger.Purchase, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	return args.Get(0).([]ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindOpenForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Purchase, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindDueBefore(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]ledger.Purchase, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).([]ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindOverdueSince(ctx context.Context, tenantID uuid.UUID, asOf time.Time, graceDays int) ([]ledger.Purchase, error) {
	args := m.Called(ctx, tenantID, asOf, graceDays)
	return args.Get(0).([]ledger.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *ledger.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) SaveWithLock(ctx context.Context, purchase *ledger.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.PurchaseFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) SumOutstandingForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPurchaseRepository) SumOutstandingByCollector(ctx context.Context, tenantID, collectorID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, collectorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPurchaseRepository) GeneratePurchaseNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
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
