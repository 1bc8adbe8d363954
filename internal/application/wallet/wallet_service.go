package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
	"github.com/safo-124/high-purchase-sub007/internal/domain/wallet"
)

// WalletService handles the customer stored-value account. The balance on
// the Customer aggregate is a cache of the transaction ledger: every change
// writes both, and reconciliation recomputes the cache from the ledger.
type WalletService struct {
	customerRepo partner.CustomerRepository
	txRepo       wallet.TransactionRepository
	txm          shared.TransactionManager
	audit        shared.AuditSink
	logger       *zap.Logger
}

// NewWalletService creates a new WalletService
func NewWalletService(
	customerRepo partner.CustomerRepository,
	txRepo wallet.TransactionRepository,
	txm shared.TransactionManager,
	audit shared.AuditSink,
	logger *zap.Logger,
) *WalletService {
	return &WalletService{
		customerRepo: customerRepo,
		txRepo:       txRepo,
		txm:          txm,
		audit:        audit,
		logger:       logger,
	}
}

// RequestDeposit records a PENDING wallet deposit. The customer's current
// balance is snapshotted for the reviewer's context; it carries no authority
// at confirmation time.
func (s *WalletService) RequestDeposit(
	ctx context.Context,
	auth shared.AuthContext,
	customerID uuid.UUID,
	amount valueobject.Money,
	reference string,
) (*wallet.Transaction, error) {
	if err := auth.Require(shared.CapWalletLoad); err != nil {
		return nil, err
	}

	customer, err := s.loadCustomer(ctx, auth.TenantID, customerID)
	if err != nil {
		return nil, err
	}

	tx, err := wallet.NewDepositRequest(auth.TenantID, customer.ID, auth.UserID, amount, customer.WalletBalance)
	if err != nil {
		return nil, err
	}
	if reference != "" {
		tx.WithReference(reference)
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save deposit request: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "wallet.deposit_requested", "WalletTransaction", tx.ID, map[string]any{
		"customer_id": customer.ID.String(),
		"amount":      tx.Amount.StringFixed(2),
	})
	return tx, nil
}

// ConfirmDeposit confirms a PENDING deposit against the customer's current
// balance. The balance is re-read here: if other deposits confirmed since
// the request was taken, the stale request-time snapshot is ignored and the
// credit applies on top of the live balance. The CONFIRMED transaction and
// the balance write commit together; a lost version race re-reads both
// aggregates and retries once, so the ledger never carries a confirmed
// deposit the balance does not reflect.
func (s *WalletService) ConfirmDeposit(
	ctx context.Context,
	auth shared.AuthContext,
	transactionID uuid.UUID,
) (*wallet.Transaction, error) {
	if err := auth.Require(shared.CapWalletConfirm); err != nil {
		return nil, err
	}

	const attempts = 2
	for attempt := 1; ; attempt++ {
		tx, err := s.loadTransaction(ctx, auth.TenantID, transactionID)
		if err != nil {
			return nil, err
		}
		customer, err := s.loadCustomer(ctx, auth.TenantID, tx.CustomerID)
		if err != nil {
			return nil, err
		}

		if !tx.RequestedBalance.Equal(customer.WalletBalance) {
			s.logger.Info("deposit snapshot stale, confirming against live balance",
				zap.String("transaction_id", tx.ID.String()),
				zap.String("requested_balance", tx.RequestedBalance.StringFixed(2)),
				zap.String("live_balance", customer.WalletBalance.StringFixed(2)))
		}

		if err := tx.Confirm(auth.UserID, customer.WalletBalance); err != nil {
			return nil, err
		}
		if err := customer.CreditWallet(tx.GetAmountMoney()); err != nil {
			return nil, err
		}

		err = s.txm.InTransaction(ctx, func(ctx context.Context) error {
			if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
				return err
			}
			return s.txRepo.Save(ctx, tx)
		})
		if err == nil {
			s.audit.Record(ctx, auth.UserID, "wallet.deposit_confirmed", "WalletTransaction", tx.ID, map[string]any{
				"customer_id":   customer.ID.String(),
				"amount":        tx.Amount.StringFixed(2),
				"balance_after": tx.BalanceAfter.StringFixed(2),
			})
			return tx, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt >= attempts {
			return nil, fmt.Errorf("failed to confirm deposit: %w", err)
		}
		// Somebody else moved the balance; re-read and re-derive
		s.logger.Debug("customer version conflict, retrying",
			zap.String("transaction_id", transactionID.String()))
	}
}

// RejectDeposit rejects a PENDING deposit with a reason. No balance effect.
func (s *WalletService) RejectDeposit(
	ctx context.Context,
	auth shared.AuthContext,
	transactionID uuid.UUID,
	reason string,
) (*wallet.Transaction, error) {
	if err := auth.Require(shared.CapWalletConfirm); err != nil {
		return nil, err
	}

	tx, err := s.loadTransaction(ctx, auth.TenantID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := tx.Reject(auth.UserID, reason); err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "wallet.deposit_rejected", "WalletTransaction", tx.ID, map[string]any{
		"reason": reason,
	})
	return tx, nil
}

// DebitForPurchase applies wallet funds to a purchase in one step: the
// balance check, the CONFIRMED debit transaction and the cache update commit
// together, with one retry against a re-read balance when the version check
// loses. Fails with INSUFFICIENT_WALLET_BALANCE when the wallet cannot
// cover the amount.
func (s *WalletService) DebitForPurchase(
	ctx context.Context,
	auth shared.AuthContext,
	customerID, purchaseID uuid.UUID,
	amount valueobject.Money,
) (*wallet.Transaction, error) {
	const attempts = 2
	for attempt := 1; ; attempt++ {
		customer, err := s.loadCustomer(ctx, auth.TenantID, customerID)
		if err != nil {
			return nil, err
		}

		tx, err := wallet.NewPurchaseDebit(
			auth.TenantID, customer.ID, auth.UserID, purchaseID,
			amount, customer.WalletBalance,
		)
		if err != nil {
			return nil, err
		}
		if err := customer.DebitWallet(amount); err != nil {
			return nil, err
		}

		err = s.txm.InTransaction(ctx, func(ctx context.Context) error {
			if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
				return err
			}
			return s.txRepo.Save(ctx, tx)
		})
		if err == nil {
			s.audit.Record(ctx, auth.UserID, "wallet.debit", "WalletTransaction", tx.ID, map[string]any{
				"customer_id": customer.ID.String(),
				"purchase_id": purchaseID.String(),
				"amount":      tx.Amount.StringFixed(2),
			})
			return tx, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt >= attempts {
			return nil, fmt.Errorf("failed to debit wallet: %w", err)
		}
		s.logger.Debug("customer version conflict, retrying",
			zap.String("customer_id", customerID.String()))
	}
}

// RecomputeBalance recomputes the wallet balance from the confirmed
// transaction log. Used by reconciliation to audit the cached balance.
func (s *WalletService) RecomputeBalance(
	ctx context.Context,
	auth shared.AuthContext,
	customerID uuid.UUID,
) (valueobject.Money, error) {
	sum, err := s.txRepo.SumConfirmedByCustomer(ctx, auth.TenantID, customerID)
	if err != nil {
		return valueobject.ZeroGHS(), fmt.Errorf("failed to sum wallet ledger: %w", err)
	}
	return valueobject.NewMoneyGHS(sum), nil
}

func (s *WalletService) loadCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}
	return customer, nil
}

func (s *WalletService) loadTransaction(ctx context.Context, tenantID, txID uuid.UUID) (*wallet.Transaction, error) {
	tx, err := s.txRepo.FindByIDForTenant(ctx, tenantID, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if tx == nil {
		return nil, shared.NewDomainError("TRANSACTION_NOT_FOUND", "Wallet transaction not found")
	}
	return tx, nil
}
