package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/commission"
	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// CommissionService runs commission calculations and the approval workflow
type CommissionService struct {
	commissionRepo commission.Repository
	paymentRepo    ledger.PaymentRepository
	idempotency    shared.IdempotencyStore
	audit          shared.AuditSink
	logger         *zap.Logger
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(
	commissionRepo commission.Repository,
	paymentRepo ledger.PaymentRepository,
	idempotency shared.IdempotencyStore,
	audit shared.AuditSink,
	logger *zap.Logger,
) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		paymentRepo:    paymentRepo,
		idempotency:    idempotency,
		audit:          audit,
		logger:         logger,
	}
}

// CalculateRequest represents a commission run over a period
type CalculateRequest struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Rate        decimal.Decimal
	// Force skips the processed-run check, for corrective re-runs after a
	// record was deleted. The period overlap check still applies.
	Force bool
}

// runKey identifies one collector's run of one period
func runKey(tenantID, collectorID uuid.UUID, start, end time.Time) string {
	return fmt.Sprintf("commission:%s:%s:%s:%s",
		tenantID, collectorID, start.UTC().Format("2006-01-02"), end.UTC().Format("2006-01-02"))
}

// Calculate aggregates confirmed collector payments over the period and
// produces one PENDING commission per collector with collections. Re-running
// the same period is a no-op per collector: the idempotency store catches
// recent duplicates cheaply, and the repository overlap check is the
// authoritative guard.
func (s *CommissionService) Calculate(
	ctx context.Context,
	auth shared.AuthContext,
	req CalculateRequest,
) ([]commission.Commission, error) {
	if err := auth.Require(shared.CapCommissionRun); err != nil {
		return nil, err
	}
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after period start")
	}
	if req.Rate.IsNegative() || req.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Commission rate must be between 0 and 1")
	}

	totals, err := s.paymentRepo.SumConfirmedByCollector(ctx, auth.TenantID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate collections: %w", err)
	}

	created := make([]commission.Commission, 0, len(totals))
	for _, total := range totals {
		key := runKey(auth.TenantID, total.CollectorID, req.PeriodStart, req.PeriodEnd)

		if !req.Force {
			done, err := s.idempotency.IsProcessed(ctx, key)
			if err != nil {
				s.logger.Warn("idempotency check failed, falling back to overlap check", zap.Error(err))
			} else if done {
				s.logger.Info("commission run already processed, skipping",
					zap.String("collector_id", total.CollectorID.String()))
				continue
			}
		}

		overlapping, err := s.commissionRepo.FindOverlapping(
			ctx, auth.TenantID, total.CollectorID, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to check overlapping commissions: %w", err)
		}
		if len(overlapping) > 0 {
			s.logger.Info("commission period overlaps existing record, skipping",
				zap.String("collector_id", total.CollectorID.String()))
			continue
		}

		c, err := commission.NewCommission(
			auth.TenantID, total.CollectorID,
			req.PeriodStart, req.PeriodEnd,
			valueobject.NewMoneyGHS(total.Total), req.Rate, total.Payments,
		)
		if err != nil {
			return nil, err
		}
		if err := s.commissionRepo.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to save commission: %w", err)
		}
		if _, err := s.idempotency.MarkProcessed(ctx, key, shared.DefaultIdempotencyConfig().TTL); err != nil {
			s.logger.Warn("failed to mark commission run processed", zap.Error(err))
		}

		created = append(created, *c)
	}

	s.audit.Record(ctx, auth.UserID, "commission.calculate", "Commission", uuid.Nil, map[string]any{
		"period_start": req.PeriodStart.Format("2006-01-02"),
		"period_end":   req.PeriodEnd.Format("2006-01-02"),
		"created":      len(created),
	})
	s.logger.Info("commission run finished",
		zap.Int("collectors", len(totals)), zap.Int("created", len(created)))

	return created, nil
}

// Approve approves a PENDING commission for payout
func (s *CommissionService) Approve(
	ctx context.Context,
	auth shared.AuthContext,
	commissionID uuid.UUID,
) (*commission.Commission, error) {
	if err := auth.Require(shared.CapCommissionApprove); err != nil {
		return nil, err
	}

	c, err := s.load(ctx, auth.TenantID, commissionID)
	if err != nil {
		return nil, err
	}
	if err := c.Approve(auth.UserID); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.SaveWithLock(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save commission: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "commission.approve", "Commission", c.ID, map[string]any{
		"collector_id": c.CollectorID.String(),
		"amount":       c.Amount.StringFixed(2),
	})
	return c, nil
}

// MarkPaid records the payout of an APPROVED commission
func (s *CommissionService) MarkPaid(
	ctx context.Context,
	auth shared.AuthContext,
	commissionID uuid.UUID,
	reference string,
) (*commission.Commission, error) {
	if err := auth.Require(shared.CapCommissionPay); err != nil {
		return nil, err
	}

	c, err := s.load(ctx, auth.TenantID, commissionID)
	if err != nil {
		return nil, err
	}
	if err := c.MarkPaid(auth.UserID, reference); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.SaveWithLock(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save commission: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "commission.pay", "Commission", c.ID, map[string]any{
		"collector_id": c.CollectorID.String(),
		"amount":       c.Amount.StringFixed(2),
		"reference":    reference,
	})
	return c, nil
}

// List returns commissions for the caller's tenant
func (s *CommissionService) List(
	ctx context.Context,
	auth shared.AuthContext,
	filter commission.Filter,
) ([]commission.Commission, error) {
	out, err := s.commissionRepo.FindAllForTenant(ctx, auth.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	return out, nil
}

func (s *CommissionService) load(ctx context.Context, tenantID, id uuid.UUID) (*commission.Commission, error) {
	c, err := s.commissionRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}
	if c == nil {
		return nil, shared.NewDomainError("COMMISSION_NOT_FOUND", "Commission not found")
	}
	return c, nil
}
