package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
	"github.com/safo-124/high-purchase-sub007/internal/domain/wallet"
)

// WalletFunds debits a customer's stored-value account when a purchase
// payment is made from wallet funds. Satisfied by the wallet service.
type WalletFunds interface {
	DebitForPurchase(ctx context.Context, auth shared.AuthContext, customerID, purchaseID uuid.UUID, amount valueobject.Money) (*wallet.Transaction, error)
}

// PaymentService handles the payment recording and confirmation workflow
type PaymentService struct {
	purchaseRepo ledger.PurchaseRepository
	paymentRepo  ledger.PaymentRepository
	txm          shared.TransactionManager
	wallet       WalletFunds
	audit        shared.AuditSink
	notifier     shared.NotificationSink
	logger       *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	purchaseRepo ledger.PurchaseRepository,
	paymentRepo ledger.PaymentRepository,
	txm shared.TransactionManager,
	walletFunds WalletFunds,
	audit shared.AuditSink,
	notifier shared.NotificationSink,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		txm:          txm,
		wallet:       walletFunds,
		audit:        audit,
		notifier:     notifier,
		logger:       logger,
	}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	PurchaseID uuid.UUID
	Amount     valueobject.Money
	Method     ledger.PaymentMethod
	Reference  string
}

// RecordCollectorPayment records a field collection. The payment starts
// PENDING and touches no balances until a higher-trust role confirms it.
func (s *PaymentService) RecordCollectorPayment(
	ctx context.Context,
	auth shared.AuthContext,
	req RecordPaymentRequest,
) (*ledger.Payment, error) {
	if err := auth.Require(shared.CapPaymentRecord); err != nil {
		return nil, err
	}

	// Wallet debits are immediate; a collector payment sits PENDING, so the
	// two cannot be combined
	if req.Method == ledger.PaymentMethodWallet {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Wallet payments cannot be recorded for later confirmation")
	}

	purchase, err := s.loadOpenPurchase(ctx, auth.TenantID, req.PurchaseID)
	if err != nil {
		return nil, err
	}
	if req.Amount.Amount().GreaterThan(purchase.OutstandingBalance) {
		return nil, shared.NewDomainErrorf("OVERPAYMENT_REJECTED",
			"Payment of %s exceeds outstanding balance of %s",
			req.Amount.Amount().StringFixed(2), purchase.OutstandingBalance.StringFixed(2))
	}

	payment, err := ledger.NewCollectorPayment(
		auth.TenantID, purchase.ShopID, purchase.ID, purchase.CustomerID,
		req.Amount, req.Method, auth.UserID,
	)
	if err != nil {
		return nil, err
	}
	if req.Reference != "" {
		payment.Reference = req.Reference
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "payment.record", "Payment", payment.ID, map[string]any{
		"purchase_number": purchase.PurchaseNumber,
		"amount":          payment.Amount.StringFixed(2),
		"status":          string(payment.Status),
	})
	return payment, nil
}

// RecordStaffPayment records a counter payment. It is born CONFIRMED and is
// applied to the purchase balance in the same operation: the payment row and
// the balance write commit together, and a WALLET payment debits the
// customer's wallet inside the same transaction. A lost version race on the
// purchase re-reads it and retries once.
func (s *PaymentService) RecordStaffPayment(
	ctx context.Context,
	auth shared.AuthContext,
	req RecordPaymentRequest,
) (*ledger.Payment, error) {
	if err := auth.Require(shared.CapPaymentConfirm); err != nil {
		return nil, err
	}

	const attempts = 2
	for attempt := 1; ; attempt++ {
		purchase, err := s.loadOpenPurchase(ctx, auth.TenantID, req.PurchaseID)
		if err != nil {
			return nil, err
		}

		// Validate against the balance before writing anything
		if err := purchase.ApplyConfirmedPayment(req.Amount); err != nil {
			return nil, err
		}

		payment, err := ledger.NewStaffPayment(
			auth.TenantID, purchase.ShopID, purchase.ID, purchase.CustomerID,
			req.Amount, req.Method, auth.UserID,
		)
		if err != nil {
			return nil, err
		}
		if req.Reference != "" {
			payment.Reference = req.Reference
		}

		err = s.txm.InTransaction(ctx, func(ctx context.Context) error {
			if err := s.purchaseRepo.SaveWithLock(ctx, purchase); err != nil {
				return err
			}
			if err := s.paymentRepo.Save(ctx, payment); err != nil {
				return fmt.Errorf("failed to save payment: %w", err)
			}
			if req.Method == ledger.PaymentMethodWallet {
				if _, err := s.wallet.DebitForPurchase(ctx, auth, purchase.CustomerID, purchase.ID, req.Amount); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			s.notifyIfCompleted(ctx, purchase)
			s.audit.Record(ctx, auth.UserID, "payment.record_confirmed", "Payment", payment.ID, map[string]any{
				"purchase_number": purchase.PurchaseNumber,
				"amount":          payment.Amount.StringFixed(2),
				"outstanding":     purchase.OutstandingBalance.StringFixed(2),
			})
			return payment, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt >= attempts {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				return nil, domainErr
			}
			return nil, fmt.Errorf("failed to save purchase: %w", err)
		}
		// Somebody else moved the balance; re-read and re-validate
		s.logger.Debug("purchase version conflict, retrying",
			zap.String("purchase_id", req.PurchaseID.String()))
	}
}

// ConfirmPayment confirms a PENDING collector payment and applies it to the
// purchase balance. The confirmed payment row and the balance write commit
// together. The purchase write uses optimistic locking; on a version
// conflict the purchase is re-read and the application retried once, so two
// racing confirmations for amounts that together would overpay can never
// drive the outstanding balance negative.
func (s *PaymentService) ConfirmPayment(
	ctx context.Context,
	auth shared.AuthContext,
	paymentID uuid.UUID,
) (*ledger.Payment, error) {
	if err := auth.Require(shared.CapPaymentConfirm); err != nil {
		return nil, err
	}

	payment, err := s.loadPayment(ctx, auth.TenantID, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.Confirm(auth.UserID); err != nil {
		return nil, err
	}

	purchase, err := s.applyToPurchase(ctx, auth.TenantID, payment)
	if err != nil {
		return nil, err
	}
	s.notifyIfCompleted(ctx, purchase)

	s.audit.Record(ctx, auth.UserID, "payment.confirm", "Payment", payment.ID, map[string]any{
		"amount": payment.Amount.StringFixed(2),
	})
	s.logger.Info("payment confirmed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)))
	return payment, nil
}

func (s *PaymentService) applyToPurchase(ctx context.Context, tenantID uuid.UUID, payment *ledger.Payment) (*ledger.Purchase, error) {
	const attempts = 2
	for attempt := 1; ; attempt++ {
		purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, payment.PurchaseID)
		if err != nil {
			return nil, fmt.Errorf("failed to get purchase: %w", err)
		}
		if purchase == nil {
			return nil, shared.NewDomainError("PURCHASE_NOT_FOUND", "Purchase not found")
		}
		if err := purchase.ApplyConfirmedPayment(payment.GetAmountMoney()); err != nil {
			return nil, err
		}

		err = s.txm.InTransaction(ctx, func(ctx context.Context) error {
			if err := s.purchaseRepo.SaveWithLock(ctx, purchase); err != nil {
				return err
			}
			return s.paymentRepo.Save(ctx, payment)
		})
		if err == nil {
			return purchase, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt >= attempts {
			return nil, fmt.Errorf("failed to save purchase: %w", err)
		}
		// Somebody else moved the balance; re-read and re-validate
		s.logger.Debug("purchase version conflict, retrying",
			zap.String("purchase_id", payment.PurchaseID.String()))
	}
}

// notifyIfCompleted tells the customer their obligation is settled and
// delivery has been scheduled. Delivery of the message is best effort.
func (s *PaymentService) notifyIfCompleted(ctx context.Context, purchase *ledger.Purchase) {
	if purchase == nil || purchase.Status != ledger.PurchaseStatusCompleted {
		return
	}
	msg := fmt.Sprintf("Purchase %s is fully paid. Delivery has been scheduled.", purchase.PurchaseNumber)
	if err := s.notifier.Send(ctx, purchase.CustomerID, msg); err != nil {
		s.logger.Warn("completion notification failed",
			zap.String("purchase_number", purchase.PurchaseNumber),
			zap.Error(err))
	}
}

// RejectPayment rejects a PENDING collector payment with a reason
func (s *PaymentService) RejectPayment(
	ctx context.Context,
	auth shared.AuthContext,
	paymentID uuid.UUID,
	reason string,
) (*ledger.Payment, error) {
	if err := auth.Require(shared.CapPaymentConfirm); err != nil {
		return nil, err
	}

	payment, err := s.loadPayment(ctx, auth.TenantID, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.Reject(auth.UserID, reason); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "payment.reject", "Payment", payment.ID, map[string]any{
		"reason": reason,
	})
	return payment, nil
}

// ListPendingPayments returns payments awaiting confirmation
func (s *PaymentService) ListPendingPayments(
	ctx context.Context,
	auth shared.AuthContext,
	filter ledger.PaymentFilter,
) ([]ledger.Payment, error) {
	payments, err := s.paymentRepo.FindPendingForTenant(ctx, auth.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return payments, nil
}

// ListPaymentsByPurchase returns the full ledger for one purchase
func (s *PaymentService) ListPaymentsByPurchase(
	ctx context.Context,
	auth shared.AuthContext,
	purchaseID uuid.UUID,
) ([]ledger.Payment, error) {
	payments, err := s.paymentRepo.FindByPurchase(ctx, auth.TenantID, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) loadPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*ledger.Payment, error) {
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment == nil {
		return nil, shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
	}
	return payment, nil
}

func (s *PaymentService) loadOpenPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (*ledger.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return nil, shared.NewDomainError("PURCHASE_NOT_FOUND", "Purchase not found")
	}
	if !purchase.Status.CanReceivePayment() {
		return nil, shared.NewDomainErrorf("STATE_CONFLICT", "Purchase %s cannot receive payments", purchase.PurchaseNumber)
	}
	return purchase, nil
}
