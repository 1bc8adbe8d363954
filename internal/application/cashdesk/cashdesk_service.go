package cashdesk

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/cashdesk"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// CashdeskService handles daily cash summaries and their review
type CashdeskService struct {
	summaryRepo cashdesk.Repository
	paymentRepo ledger.PaymentRepository
	audit       shared.AuditSink
	logger      *zap.Logger
}

// NewCashdeskService creates a new CashdeskService
func NewCashdeskService(
	summaryRepo cashdesk.Repository,
	paymentRepo ledger.PaymentRepository,
	audit shared.AuditSink,
	logger *zap.Logger,
) *CashdeskService {
	return &CashdeskService{
		summaryRepo: summaryRepo,
		paymentRepo: paymentRepo,
		audit:       audit,
		logger:      logger,
	}
}

// channelMethod maps a reconciliation channel to the payment method whose
// confirmed total it should match
func channelMethod(c cashdesk.Channel) ledger.PaymentMethod {
	switch c {
	case cashdesk.ChannelMobileMoney:
		return ledger.PaymentMethodMobileMoney
	case cashdesk.ChannelBank:
		return ledger.PaymentMethodBankTransfer
	default:
		return ledger.PaymentMethodCash
	}
}

// SubmitSummary stores a cashier's end-of-day count as a DRAFT summary.
// One summary per shop/channel/day.
func (s *CashdeskService) SubmitSummary(
	ctx context.Context,
	auth shared.AuthContext,
	in cashdesk.NewDailySummaryInput,
) (*cashdesk.DailySummary, error) {
	in.TenantID = auth.TenantID
	in.SubmittedBy = auth.UserID

	existing, err := s.summaryRepo.FindByShopChannelAndDay(ctx, auth.TenantID, in.ShopID, in.Channel, in.SummaryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing summary: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A summary for this shop, channel and day already exists")
	}

	summary, err := cashdesk.NewDailySummary(in)
	if err != nil {
		return nil, err
	}
	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "cashdesk.submit", "DailySummary", summary.ID, map[string]any{
		"shop_id":  summary.ShopID.String(),
		"channel":  string(summary.Channel),
		"variance": summary.Variance.StringFixed(2),
	})
	if summary.HasVariance() {
		s.logger.Warn("daily summary submitted with variance",
			zap.String("shop_id", summary.ShopID.String()),
			zap.String("channel", string(summary.Channel)),
			zap.String("variance", summary.Variance.StringFixed(2)))
	}
	return summary, nil
}

// LedgerCrossCheck compares a summary's collected amount against the payment
// ledger's confirmed total for the same shop, channel and day
type LedgerCrossCheck struct {
	ReportedCollected decimal.Decimal `json:"reported_collected"`
	LedgerCollected   decimal.Decimal `json:"ledger_collected"`
	Difference        decimal.Decimal `json:"difference"`
}

// CrossCheck recomputes the confirmed-payment total for the summary's
// shop/channel/day and reports the difference against what the cashier
// declared. The reviewer reads this alongside the drawer variance.
func (s *CashdeskService) CrossCheck(
	ctx context.Context,
	auth shared.AuthContext,
	summaryID uuid.UUID,
) (*LedgerCrossCheck, error) {
	summary, err := s.load(ctx, auth.TenantID, summaryID)
	if err != nil {
		return nil, err
	}

	ledgerTotal, err := s.paymentRepo.SumConfirmedByShopMethodAndDay(
		ctx, auth.TenantID, summary.ShopID, channelMethod(summary.Channel), summary.SummaryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger payments: %w", err)
	}

	return &LedgerCrossCheck{
		ReportedCollected: summary.CollectedAmount,
		LedgerCollected:   ledgerTotal,
		Difference:        summary.CollectedAmount.Sub(ledgerTotal),
	}, nil
}

// VerifySummary closes the review accepting the figures
func (s *CashdeskService) VerifySummary(
	ctx context.Context,
	auth shared.AuthContext,
	summaryID uuid.UUID,
	notes string,
) (*cashdesk.DailySummary, error) {
	if err := auth.Require(shared.CapCashVerify); err != nil {
		return nil, err
	}

	summary, err := s.load(ctx, auth.TenantID, summaryID)
	if err != nil {
		return nil, err
	}
	if err := summary.Verify(auth.UserID, notes); err != nil {
		return nil, err
	}
	if err := s.summaryRepo.SaveWithLock(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "cashdesk.verify", "DailySummary", summary.ID, nil)
	return summary, nil
}

// FlagDiscrepancy closes the review marking the summary for investigation
func (s *CashdeskService) FlagDiscrepancy(
	ctx context.Context,
	auth shared.AuthContext,
	summaryID uuid.UUID,
	notes string,
) (*cashdesk.DailySummary, error) {
	if err := auth.Require(shared.CapCashVerify); err != nil {
		return nil, err
	}

	summary, err := s.load(ctx, auth.TenantID, summaryID)
	if err != nil {
		return nil, err
	}
	if err := summary.FlagDiscrepancy(auth.UserID, notes); err != nil {
		return nil, err
	}
	if err := s.summaryRepo.SaveWithLock(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "cashdesk.discrepancy", "DailySummary", summary.ID, map[string]any{
		"notes": notes,
	})
	return summary, nil
}

// ListSummaries returns daily summaries for the caller's tenant
func (s *CashdeskService) ListSummaries(
	ctx context.Context,
	auth shared.AuthContext,
	filter cashdesk.Filter,
) ([]cashdesk.DailySummary, error) {
	out, err := s.summaryRepo.FindAllForTenant(ctx, auth.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return out, nil
}

func (s *CashdeskService) load(ctx context.Context, tenantID, id uuid.UUID) (*cashdesk.DailySummary, error) {
	summary, err := s.summaryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	if summary == nil {
		return nil, shared.NewDomainError("SUMMARY_NOT_FOUND", "Daily summary not found")
	}
	return summary, nil
}
