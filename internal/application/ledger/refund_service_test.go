package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
	"github.com/safo-124/high-purchase-sub007/internal/domain/wallet"
)

func newRefundService(
	purchaseRepo *MockPurchaseRepository,
	refundRepo *MockRefundRepository,
	customerRepo *MockCustomerRepository,
	walletRepo *MockWalletTransactionRepository,
	audit *MockAuditSink,
) *RefundService {
	return NewRefundService(purchaseRepo, refundRepo, customerRepo, walletRepo, passthroughTx{}, audit, zap.NewNop())
}

func TestRefund_Cash(t *testing.T) {
	tenantID := uuid.New()
	auth := confirmerAuth(tenantID)
	purchase := creditPurchase(t, tenantID) // 300 paid as down payment

	purchaseRepo := new(MockPurchaseRepository)
	refundRepo := new(MockRefundRepository)
	customerRepo := new(MockCustomerRepository)
	walletRepo := new(MockWalletTransactionRepository)
	audit := new(MockAuditSink)

	purchaseRepo.On("FindByIDForTenant", mock.Anything, tenantID, purchase.ID).Return(purchase, nil)
	refundRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Refund")).Return(nil)
	audit.On("Record", mock.Anything, auth.UserID, "purchase.refund", "Refund", mock.Anything, mock.Anything).Return()

	svc := newRefundService(purchaseRepo, refundRepo, customerRepo, walletRepo, audit)
	refund, err := svc.Refund(context.Background(), auth, RefundRequest{
		PurchaseID: purchase.ID,
		Amount:     valueobject.NewMoneyGHS(decimal.NewFromInt(100)),
		Method:     ledger.RefundMethodCash,
		Reason:     "Damaged goods returned",
	})

	require.NoError(t, err)
	assert.Equal(t, ledger.RefundMethodCash, refund.Method)
	assert.True(t, refund.Amount.Equal(decimal.NewFromInt(100)))
	// cash payouts never touch the wallet
	walletRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	customerRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	refundRepo.AssertExpectations(t)
}

func TestRefund_WalletCreditsCustomer(t *testing.T) {
	tenantID := uuid.New()
	auth := confirmerAuth(tenantID)
	purchase := creditPurchase(t, tenantID)

	customer, err := partner.NewCustomer(tenantID, "CUST-200", "Kofi Annor", "+233200000001")
	require.NoError(t, err)
	customer.ID = purchase.CustomerID

	purchaseRepo := new(MockPurchaseRepository)
	refundRepo := new(MockRefundRepository)
	customerRepo := new(MockCustomerRepository)
	walletRepo := new(MockWalletTransactionRepository)
	audit := new(MockAuditSink)

	purchaseRepo.On("FindByIDForTenant", mock.Anything, tenantID, purchase.ID).Return(purchase, nil)
	customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, purchase.CustomerID).Return(customer, nil)
	customerRepo.On("SaveWithLock", mock.Anything, customer).Return(nil)
	walletRepo.On("Save", mock.Anything, mock.AnythingOfType("*wallet.Transaction")).Return(nil)
	refundRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Refund")).Return(nil)
	audit.On("Record", mock.Anything, auth.UserID, "purchase.refund", "Refund", mock.Anything, mock.Anything).Return()

	svc := newRefundService(purchaseRepo, refundRepo, customerRepo, walletRepo, audit)
	refund, err := svc.Refund(context.Background(), auth, RefundRequest{
		PurchaseID: purchase.ID,
		Amount:     valueobject.NewMoneyGHS(decimal.NewFromInt(250)),
		Method:     ledger.RefundMethodWallet,
		Reason:     "Order cancelled before delivery",
	})

	require.NoError(t, err)
	assert.Equal(t, ledger.RefundMethodWallet, refund.Method)
	assert.True(t, customer.WalletBalance.Equal(decimal.NewFromInt(250)))

	savedTx := walletRepo.Calls[0].Arguments.Get(1).(*wallet.Transaction)
	assert.Equal(t, wallet.TransactionTypeRefund, savedTx.TransactionType)
	assert.Equal(t, wallet.TransactionStatusConfirmed, savedTx.Status)
	customerRepo.AssertExpectations(t)
}

func TestRefund_ExceedsPaidAmount(t *testing.T) {
	tenantID := uuid.New()
	auth := confirmerAuth(tenantID)
	purchase := creditPurchase(t, tenantID) // only 300 paid

	purchaseRepo := new(MockPurchaseRepository)
	refundRepo := new(MockRefundRepository)
	purchaseRepo.On("FindByIDForTenant", mock.Anything, tenantID, purchase.ID).Return(purchase, nil)

	svc := newRefundService(purchaseRepo, refundRepo, new(MockCustomerRepository), new(MockWalletTransactionRepository), new(MockAuditSink))
	_, err := svc.Refund(context.Background(), auth, RefundRequest{
		PurchaseID: purchase.ID,
		Amount:     valueobject.NewMoneyGHS(decimal.NewFromInt(500)),
		Method:     ledger.RefundMethodCash,
		Reason:     "Over-refund attempt",
	})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INVALID_AMOUNT", de.Code)
	refundRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefund_RequiresCapability(t *testing.T) {
	tenantID := uuid.New()
	auth := collectorAuth(tenantID) // can record, not confirm

	svc := newRefundService(new(MockPurchaseRepository), new(MockRefundRepository), new(MockCustomerRepository), new(MockWalletTransactionRepository), new(MockAuditSink))
	_, err := svc.Refund(context.Background(), auth, RefundRequest{
		PurchaseID: uuid.New(),
		Amount:     valueobject.NewMoneyGHS(decimal.NewFromInt(10)),
		Method:     ledger.RefundMethodCash,
		Reason:     "x",
	})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "PERMISSION_DENIED", de.Code)
}

func TestRefund_PurchaseNotFound(t *testing.T) {
	tenantID := uuid.New()
	auth := confirmerAuth(tenantID)
	missing := uuid.New()

	purchaseRepo := new(MockPurchaseRepository)
	purchaseRepo.On("FindByIDForTenant", mock.Anything, tenantID, missing).Return(nil, nil)

	svc := newRefundService(purchaseRepo, new(MockRefundRepository), new(MockCustomerRepository), new(MockWalletTransactionRepository), new(MockAuditSink))
	_, err := svc.Refund(context.Background(), auth, RefundRequest{
		PurchaseID: missing,
		Amount:     valueobject.NewMoneyGHS(decimal.NewFromInt(10)),
		Method:     ledger.RefundMethodCash,
		Reason:     "x",
	})

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "PURCHASE_NOT_FOUND", de.Code)
}
