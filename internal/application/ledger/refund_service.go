package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
	"github.com/safo-124/high-purchase-sub007/internal/domain/wallet"
)

// RefundService handles returning paid money to customers. Purchases are
// never deleted; a refund record supersedes, and wallet refunds credit the
// customer's stored value through the wallet ledger.
type RefundService struct {
	purchaseRepo ledger.PurchaseRepository
	refundRepo   ledger.RefundRepository
	customerRepo partner.CustomerRepository
	walletRepo   wallet.TransactionRepository
	txm          shared.TransactionManager
	audit        shared.AuditSink
	logger       *zap.Logger
}

// NewRefundService creates a new RefundService
func NewRefundService(
	purchaseRepo ledger.PurchaseRepository,
	refundRepo ledger.RefundRepository,
	customerRepo partner.CustomerRepository,
	walletRepo wallet.TransactionRepository,
	txm shared.TransactionManager,
	audit shared.AuditSink,
	logger *zap.Logger,
) *RefundService {
	return &RefundService{
		purchaseRepo: purchaseRepo,
		refundRepo:   refundRepo,
		customerRepo: customerRepo,
		walletRepo:   walletRepo,
		txm:          txm,
		audit:        audit,
		logger:       logger,
	}
}

// RefundRequest represents a request to refund paid purchase money
type RefundRequest struct {
	PurchaseID uuid.UUID
	Amount     valueobject.Money
	Method     ledger.RefundMethod
	Reason     string
}

// Refund creates a refund against a purchase. WALLET refunds credit the
// customer's wallet with a CONFIRMED REFUND transaction; CASH refunds only
// record the payout.
func (s *RefundService) Refund(
	ctx context.Context,
	auth shared.AuthContext,
	req RefundRequest,
) (*ledger.Refund, error) {
	if err := auth.Require(shared.CapPaymentConfirm); err != nil {
		return nil, err
	}

	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, auth.TenantID, req.PurchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return nil, shared.NewDomainError("PURCHASE_NOT_FOUND", "Purchase not found")
	}

	refund, err := ledger.NewRefund(purchase, req.Amount, req.Method, req.Reason, auth.UserID)
	if err != nil {
		return nil, err
	}

	// The refund record, the wallet credit and the balance write commit
	// together; a partial refund must never be observable
	err = s.txm.InTransaction(ctx, func(ctx context.Context) error {
		if req.Method == ledger.RefundMethodWallet {
			customer, err := s.customerRepo.FindByIDForTenant(ctx, auth.TenantID, purchase.CustomerID)
			if err != nil {
				return fmt.Errorf("failed to get customer: %w", err)
			}
			if customer == nil {
				return shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
			}

			credit, err := wallet.NewRefundCredit(
				auth.TenantID, customer.ID, auth.UserID, purchase.ID,
				req.Amount, customer.WalletBalance,
			)
			if err != nil {
				return err
			}
			if err := customer.CreditWallet(req.Amount); err != nil {
				return err
			}
			if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
				return fmt.Errorf("failed to save customer: %w", err)
			}
			if err := s.walletRepo.Save(ctx, credit); err != nil {
				return fmt.Errorf("failed to save wallet credit: %w", err)
			}
		}
		if err := s.refundRepo.Save(ctx, refund); err != nil {
			return fmt.Errorf("failed to save refund: %w", err)
		}
		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, err
	}

	s.audit.Record(ctx, auth.UserID, "purchase.refund", "Refund", refund.ID, map[string]any{
		"purchase_number": purchase.PurchaseNumber,
		"amount":          refund.Amount.StringFixed(2),
		"method":          string(refund.Method),
	})
	s.logger.Info("refund recorded",
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("amount", refund.Amount.StringFixed(2)),
		zap.String("method", string(refund.Method)))

	return refund, nil
}
