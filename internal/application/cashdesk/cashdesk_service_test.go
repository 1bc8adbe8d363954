package cashdesk

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/cashdesk"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

type cashdeskFixture struct {
	summaryRepo *MockSummaryRepository
	paymentRepo *MockPaymentRepository
	audit       *MockAuditSink
	svc         *CashdeskService
}

func newCashdeskFixture() *cashdeskFixture {
	f := &cashdeskFixture{
		summaryRepo: new(MockSummaryRepository),
		paymentRepo: new(MockPaymentRepository),
		audit:       new(MockAuditSink),
	}
	f.svc = NewCashdeskService(f.summaryRepo, f.paymentRepo, f.audit, zap.NewNop())
	return f
}

func cashierAuth(tenantID uuid.UUID) shared.AuthContext {
	return shared.NewAuthContext(uuid.New(), tenantID, "cashier")
}

func reviewerAuth(tenantID uuid.UUID) shared.AuthContext {
	return shared.NewAuthContext(uuid.New(), tenantID, "manager", shared.CapCashVerify)
}

func ghs(n int64) valueobject.Money {
	return valueobject.NewMoneyGHS(decimal.NewFromInt(n))
}

func summaryInput(shopID uuid.UUID) cashdesk.NewDailySummaryInput {
	return cashdesk.NewDailySummaryInput{
		ShopID:          shopID,
		SummaryDate:     time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Channel:         cashdesk.ChannelCash,
		OpeningBalance:  ghs(200),
		CollectedAmount: ghs(1500),
		Expenses:        ghs(100),
		ClosingBalance:  ghs(1600),
	}
}

func TestSubmitSummary(t *testing.T) {
	tenantID := uuid.New()
	auth := cashierAuth(tenantID)
	in := summaryInput(uuid.New())

	f := newCashdeskFixture()
	f.summaryRepo.On("FindByShopChannelAndDay", mock.Anything, tenantID, in.ShopID, in.Channel, in.SummaryDate).Return(nil, nil)
	f.summaryRepo.On("Save", mock.Anything, mock.AnythingOfType("*cashdesk.DailySummary")).Return(nil)
	f.audit.On("Record", mock.Anything, auth.UserID, "cashdesk.submit", "DailySummary", mock.Anything, mock.Anything).Return()

	summary, err := f.svc.SubmitSummary(context.Background(), auth, in)
	require.NoError(t, err)

	assert.Equal(t, cashdesk.SummaryStatusDraft, summary.Status)
	assert.Equal(t, tenantID, summary.TenantID)
	assert.Equal(t, auth.UserID, summary.SubmittedByID)
	// 1600 - (200 + 1500 - 100) = 0
	assert.True(t, summary.Variance.IsZero())
}

func TestSubmitSummary_DuplicateDay(t *testing.T) {
	tenantID := uuid.New()
	auth := cashierAuth(tenantID)
	in := summaryInput(uuid.New())
	in.TenantID = tenantID
	in.SubmittedBy = auth.UserID

	existing, err := cashdesk.NewDailySummary(in)
	require.NoError(t, err)

	f := newCashdeskFixture()
	f.summaryRepo.On("FindByShopChannelAndDay", mock.Anything, tenantID, in.ShopID, in.Channel, in.SummaryDate).Return(existing, nil)

	_, err = f.svc.SubmitSummary(context.Background(), auth, in)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "ALREADY_EXISTS", de.Code)
	f.summaryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCrossCheck(t *testing.T) {
	tenantID := uuid.New()
	auth := reviewerAuth(tenantID)
	in := summaryInput(uuid.New())
	in.TenantID = tenantID
	in.SubmittedBy = uuid.New()

	summary, err := cashdesk.NewDailySummary(in)
	require.NoError(t, err)

	f := newCashdeskFixture()
	f.summaryRepo.On("FindByIDForTenant", mock.Anything, tenantID, summary.ID).Return(summary, nil)
	// The cashier declared 1500 collected; the ledger only confirms 1450
	f.paymentRepo.On("SumConfirmedByShopMethodAndDay",
		mock.Anything, tenantID, summary.ShopID, ledger.PaymentMethodCash, summary.SummaryDate).
		Return(decimal.NewFromInt(1450), nil)

	check, err := f.svc.CrossCheck(context.Background(), auth, summary.ID)
	require.NoError(t, err)

	assert.True(t, check.ReportedCollected.Equal(decimal.NewFromInt(1500)))
	assert.True(t, check.LedgerCollected.Equal(decimal.NewFromInt(1450)))
	assert.True(t, check.Difference.Equal(decimal.NewFromInt(50)))
}

func TestCrossCheck_MobileMoneyChannel(t *testing.T) {
	tenantID := uuid.New()
	auth := reviewerAuth(tenantID)
	in := summaryInput(uuid.New())
	in.TenantID = tenantID
	in.SubmittedBy = uuid.New()
	in.Channel = cashdesk.ChannelMobileMoney

	summary, err := cashdesk.NewDailySummary(in)
	require.NoError(t, err)

	f := newCashdeskFixture()
	f.summaryRepo.On("FindByIDForTenant", mock.Anything, tenantID, summary.ID).Return(summary, nil)
	f.paymentRepo.On("SumConfirmedByShopMethodAndDay",
		mock.Anything, tenantID, summary.ShopID, ledger.PaymentMethodMobileMoney, summary.SummaryDate).
		Return(decimal.NewFromInt(1500), nil)

	check, err := f.svc.CrossCheck(context.Background(), auth, summary.ID)
	require.NoError(t, err)
	assert.True(t, check.Difference.IsZero())
}

func TestVerifySummary(t *testing.T) {
	tenantID := uuid.New()
	auth := reviewerAuth(tenantID)
	in := summaryInput(uuid.New())
	in.TenantID = tenantID
	in.SubmittedBy = uuid.New()

	summary, err := cashdesk.NewDailySummary(in)
	require.NoError(t, err)

	f := newCashdeskFixture()
	f.summaryRepo.On("FindByIDForTenant", mock.Anything, tenantID, summary.ID).Return(summary, nil)
	f.summaryRepo.On("SaveWithLock", mock.Anything, summary).Return(nil)
	f.audit.On("Record", mock.Anything, auth.UserID, "cashdesk.verify", "DailySummary", summary.ID, mock.Anything).Return()

	verified, err := f.svc.VerifySummary(context.Background(), auth, summary.ID, "count matches")
	require.NoError(t, err)
	assert.Equal(t, cashdesk.SummaryStatusVerified, verified.Status)
	assert.Equal(t, auth.UserID, *verified.ReviewedByID)
}

func TestVerifySummary_OwnSubmission(t *testing.T) {
	tenantID := uuid.New()
	auth := reviewerAuth(tenantID)
	in := summaryInput(uuid.New())
	in.TenantID = tenantID
	in.SubmittedBy = auth.UserID

	summary, err := cashdesk.NewDailySummary(in)
	require.NoError(t, err)

	f := newCashdeskFixture()
	f.summaryRepo.On("FindByIDForTenant", mock.Anything, tenantID, summary.ID).Return(summary, nil)

	_, err = f.svc.VerifySummary(context.Background(), auth, summary.ID, "")
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "PERMISSION_DENIED", de.Code)
	f.summaryRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestFlagDiscrepancy(t *testing.T) {
	tenantID := uuid.New()
	auth := reviewerAuth(tenantID)
	in := summaryInput(uuid.New())
	in.TenantID = tenantID
	in.SubmittedBy = uuid.New()
	in.ClosingBalance = ghs(1550) // 50 short

	summary, err := cashdesk.NewDailySummary(in)
	require.NoError(t, err)
	require.True(t, summary.Variance.Equal(decimal.NewFromInt(-50)))

	f := newCashdeskFixture()
	f.summaryRepo.On("FindByIDForTenant", mock.Anything, tenantID, summary.ID).Return(summary, nil)
	f.summaryRepo.On("SaveWithLock", mock.Anything, summary).Return(nil)
	f.audit.On("Record", mock.Anything, auth.UserID, "cashdesk.discrepancy", "DailySummary", summary.ID, mock.Anything).Return()

	flagged, err := f.svc.FlagDiscrepancy(context.Background(), auth, summary.ID, "drawer 50 short, till roll missing")
	require.NoError(t, err)
	assert.Equal(t, cashdesk.SummaryStatusDiscrepancy, flagged.Status)

	// The review is closed either way
	_, err = f.svc.VerifySummary(context.Background(), auth, summary.ID, "")
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "STATE_CONFLICT", de.Code)
}
