package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// TransactionType represents the type of wallet transaction
type TransactionType string

const (
	// TransactionTypeDeposit represents a customer loading money (balance increase)
	TransactionTypeDeposit TransactionType = "DEPOSIT"
	// TransactionTypePurchase represents wallet funds applied to a purchase (balance decrease)
	TransactionTypePurchase TransactionType = "PURCHASE"
	// TransactionTypeRefund represents a purchase refund credited back (balance increase)
	TransactionTypeRefund TransactionType = "REFUND"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypePurchase, TransactionTypeRefund:
		return true
	}
	return false
}

// IsIncrease returns true if this transaction type increases the balance
func (t TransactionType) IsIncrease() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeRefund
}

// TransactionStatus represents the confirmation state of a wallet transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// IsValid returns true if the status is valid
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true once the transaction can no longer transition
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusConfirmed || s == TransactionStatusRejected
}

// Transaction is an immutable record of a wallet balance change. Corrections
// are made with new transactions, never by editing an existing one.
//
// Deposits are requested PENDING with a snapshot of the balance at request
// time; the snapshot is informational only. At confirmation the balance is
// re-read from the wallet, so concurrent confirmations of other deposits
// never corrupt the running balance.
type Transaction struct {
	shared.BaseEntity
	TenantID         uuid.UUID         `json:"tenant_id"`
	CustomerID       uuid.UUID         `json:"customer_id"`
	TransactionType  TransactionType   `json:"transaction_type"`
	Amount           decimal.Decimal   `json:"amount"` // Always positive, direction from type
	RequestedBalance decimal.Decimal   `json:"requested_balance"`
	BalanceBefore    decimal.Decimal   `json:"balance_before"` // Live balance at confirmation
	BalanceAfter     decimal.Decimal   `json:"balance_after"`
	Status           TransactionStatus `json:"status"`
	PurchaseID       *uuid.UUID        `json:"purchase_id"` // Set for PURCHASE and REFUND types
	Reference        string            `json:"reference,omitempty"`
	CreatedByID      uuid.UUID         `json:"created_by_id"`
	ConfirmedByID    *uuid.UUID        `json:"confirmed_by_id"`
	ConfirmedAt      *time.Time        `json:"confirmed_at"`
	RejectedAt       *time.Time        `json:"rejected_at"`
	RejectionReason  string            `json:"rejection_reason,omitempty"`
	TransactionDate  time.Time         `json:"transaction_date"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "wallet_transactions"
}

func newTransaction(
	tenantID, customerID, createdBy uuid.UUID,
	txType TransactionType,
	amount valueobject.Money,
	balanceSnapshot decimal.Decimal,
) (*Transaction, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STAFF", "Creating staff ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid wallet transaction type")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if balanceSnapshot.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Balance snapshot cannot be negative")
	}

	return &Transaction{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		CustomerID:       customerID,
		TransactionType:  txType,
		Amount:           amount.Amount(),
		RequestedBalance: balanceSnapshot,
		CreatedByID:      createdBy,
		TransactionDate:  time.Now(),
	}, nil
}

// NewDepositRequest creates a PENDING deposit. The snapshot records what the
// wallet held when the deposit was taken; the confirmed balance math ignores
// it and works off the live balance.
func NewDepositRequest(
	tenantID, customerID, recordedBy uuid.UUID,
	amount valueobject.Money,
	balanceSnapshot decimal.Decimal,
) (*Transaction, error) {
	tx, err := newTransaction(tenantID, customerID, recordedBy, TransactionTypeDeposit, amount, balanceSnapshot)
	if err != nil {
		return nil, err
	}
	tx.Status = TransactionStatusPending
	return tx, nil
}

// NewPurchaseDebit creates a CONFIRMED debit applying wallet funds to a
// purchase. Wallet debits settle in one step: the debit only exists if the
// balance covered it at the moment of creation.
func NewPurchaseDebit(
	tenantID, customerID, recordedBy, purchaseID uuid.UUID,
	amount valueobject.Money,
	liveBalance decimal.Decimal,
) (*Transaction, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if liveBalance.LessThan(amount.Amount()) {
		return nil, shared.NewDomainErrorf("INSUFFICIENT_WALLET_BALANCE",
			"Wallet balance %s is less than debit of %s",
			liveBalance.StringFixed(2), amount.Amount().StringFixed(2))
	}
	tx, err := newTransaction(tenantID, customerID, recordedBy, TransactionTypePurchase, amount, liveBalance)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tx.Status = TransactionStatusConfirmed
	tx.PurchaseID = &purchaseID
	tx.BalanceBefore = liveBalance
	tx.BalanceAfter = liveBalance.Sub(amount.Amount())
	tx.ConfirmedByID = &recordedBy
	tx.ConfirmedAt = &now
	return tx, nil
}

// NewRefundCredit creates a CONFIRMED credit returning refunded purchase
// money to the wallet.
func NewRefundCredit(
	tenantID, customerID, approvedBy, purchaseID uuid.UUID,
	amount valueobject.Money,
	liveBalance decimal.Decimal,
) (*Transaction, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	tx, err := newTransaction(tenantID, customerID, approvedBy, TransactionTypeRefund, amount, liveBalance)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tx.Status = TransactionStatusConfirmed
	tx.PurchaseID = &purchaseID
	tx.BalanceBefore = liveBalance
	tx.BalanceAfter = liveBalance.Add(amount.Amount())
	tx.ConfirmedByID = &approvedBy
	tx.ConfirmedAt = &now
	return tx, nil
}

// Confirm transitions a PENDING deposit to CONFIRMED against the live wallet
// balance. The request-time snapshot may be stale by now; liveBalance wins.
func (t *Transaction) Confirm(confirmedBy uuid.UUID, liveBalance decimal.Decimal) error {
	switch t.Status {
	case TransactionStatusConfirmed:
		return shared.NewDomainError("STATE_CONFLICT", "Transaction is already confirmed")
	case TransactionStatusRejected:
		return shared.NewDomainError("STATE_CONFLICT", "Transaction was already rejected")
	}
	if confirmedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_STAFF", "Confirming staff ID cannot be empty")
	}
	if liveBalance.IsNegative() {
		return shared.NewDomainError("INVALID_BALANCE", "Live balance cannot be negative")
	}

	now := time.Now()
	t.Status = TransactionStatusConfirmed
	t.BalanceBefore = liveBalance
	t.BalanceAfter = liveBalance.Add(t.Amount)
	t.ConfirmedByID = &confirmedBy
	t.ConfirmedAt = &now
	t.UpdatedAt = now
	return nil
}

// Reject transitions a PENDING deposit to REJECTED. No balance effect.
func (t *Transaction) Reject(rejectedBy uuid.UUID, reason string) error {
	switch t.Status {
	case TransactionStatusConfirmed:
		return shared.NewDomainError("STATE_CONFLICT", "Transaction is already confirmed")
	case TransactionStatusRejected:
		return shared.NewDomainError("STATE_CONFLICT", "Transaction was already rejected")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	t.Status = TransactionStatusRejected
	t.RejectedAt = &now
	t.RejectionReason = reason
	t.ConfirmedByID = &rejectedBy
	t.UpdatedAt = now
	return nil
}

// WithReference sets the reference number for the transaction
func (t *Transaction) WithReference(reference string) *Transaction {
	t.Reference = reference
	return t
}

// GetSignedAmount returns the amount signed by direction: positive for
// deposits and refunds, negative for purchase debits.
func (t *Transaction) GetSignedAmount() decimal.Decimal {
	if t.TransactionType.IsIncrease() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// BalanceChange returns the net balance change of a confirmed transaction
func (t *Transaction) BalanceChange() decimal.Decimal {
	return t.BalanceAfter.Sub(t.BalanceBefore)
}

// IsPending returns true if the transaction awaits confirmation
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// IsConfirmed returns true if the transaction has been confirmed
func (t *Transaction) IsConfirmed() bool {
	return t.Status == TransactionStatusConfirmed
}

// GetAmountMoney returns the transaction amount as Money
func (t *Transaction) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(t.Amount)
}
