package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
	"github.com/safo-124/high-purchase-sub007/internal/domain/wallet"
)

// passthroughTx runs the function directly; transactional boundaries are
// exercised against a real store in the persistence tests.
type passthroughTx struct{}

func (passthroughTx) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =============================================================================
// Mock repositories and collaborators
// =============================================================================

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

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.CustomerFilter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCollector(ctx context.Context, tenantID, collectorID uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, collectorID)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.CustomerFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) FindByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) ([]ledger.Refund, error) {
	args := m.Called(ctx, tenantID, purchaseID)
	return args.Get(0).([]ledger.Refund), args.Error(1)
}

func (m *MockRefundRepository) Save(ctx context.Context, refund *ledger.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

type MockWalletTransactionRepository struct {
	mock.Mock
}

func (m *MockWalletTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*wallet.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*wallet.Transaction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletTransactionRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter wallet.TransactionFilter) ([]wallet.Transaction, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

func (m *MockWalletTransactionRepository) FindPendingForTenant(ctx context.Context, tenantID uuid.UUID, filter wallet.TransactionFilter) ([]wallet.Transaction, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

func (m *MockWalletTransactionRepository) Save(ctx context.Context, tx *wallet.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletTransactionRepository) SumConfirmedByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter wallet.TransactionFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) Check(ctx context.Context, shopID, productID uuid.UUID, qty int) (bool, error) {
	args := m.Called(ctx, shopID, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockLedger) Decrement(ctx context.Context, shopID, productID uuid.UUID, qty int) error {
	args := m.Called(ctx, shopID, productID, qty)
	return args.Error(0)
}

type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]any) {
	m.Called(ctx, actorID, action, entityType, entityID, metadata)
}

type MockPolicyProvider struct {
	mock.Mock
}

func (m *MockPolicyProvider) PolicyFor(ctx context.Context, tenantID uuid.UUID) (*ledger.InterestPolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.InterestPolicy), args.Error(1)
}

type MockWalletFunds struct {
	mock.Mock
}

func (m *MockWalletFunds) DebitForPurchase(ctx context.Context, auth shared.AuthContext, customerID, purchaseID uuid.UUID, amount valueobject.Money) (*wallet.Transaction, error) {
	args := m.Called(ctx, auth, customerID, purchaseID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Send(ctx context.Context, customerID uuid.UUID, message string) error {
	args := m.Called(ctx, customerID, message)
	return args.Error(0)
}
