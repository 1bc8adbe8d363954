package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// PurchaseType represents how a purchase is financed
type PurchaseType string

const (
	PurchaseTypeCash    PurchaseType = "CASH"    // Settled in full at creation
	PurchaseTypeLayaway PurchaseType = "LAYAWAY" // Paid over tenor, goods held until delivery
	PurchaseTypeCredit  PurchaseType = "CREDIT"  // Goods delivered, balance owed over tenor
)

// IsValid checks if the purchase type is valid
func (t PurchaseType) IsValid() bool {
	switch t {
	case PurchaseTypeCash, PurchaseTypeLayaway, PurchaseTypeCredit:
		return true
	}
	return false
}

// IsCash returns true for cash purchases
func (t PurchaseType) IsCash() bool {
	return t == PurchaseTypeCash
}

// PurchaseStatus represents the lifecycle state of a purchase obligation
type PurchaseStatus string

const (
	PurchaseStatusActive    PurchaseStatus = "ACTIVE"    // Outstanding balance > 0, within tenor
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED" // Fully paid
	PurchaseStatusOverdue   PurchaseStatus = "OVERDUE"   // Outstanding balance > 0, past due date
	PurchaseStatusDefaulted PurchaseStatus = "DEFAULTED" // Written down after prolonged delinquency
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusActive, PurchaseStatusCompleted, PurchaseStatusOverdue, PurchaseStatusDefaulted:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// CanReceivePayment returns true if confirmed payments can still be applied
func (s PurchaseStatus) CanReceivePayment() bool {
	return s == PurchaseStatusActive || s == PurchaseStatusOverdue || s == PurchaseStatusDefaulted
}

// IsOpen returns true if the purchase still carries an outstanding balance
func (s PurchaseStatus) IsOpen() bool {
	return s != PurchaseStatusCompleted
}

// DeliveryStatus represents the delivery state of purchased goods
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusScheduled DeliveryStatus = "SCHEDULED"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
)

// IsValid checks if the delivery status is valid
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusScheduled, DeliveryStatusInTransit, DeliveryStatusDelivered:
		return true
	}
	return false
}

// next returns the allowed successor state, empty when terminal
func (s DeliveryStatus) next() DeliveryStatus {
	switch s {
	case DeliveryStatusPending:
		return DeliveryStatusScheduled
	case DeliveryStatusScheduled:
		return DeliveryStatusInTransit
	case DeliveryStatusInTransit:
		return DeliveryStatusDelivered
	}
	return ""
}

// LineItem represents a product line within a purchase.
// It is a value object within the Purchase aggregate, stored as JSONB.
type LineItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewLineItem creates a line item, computing the line total
func NewLineItem(productID uuid.UUID, name string, quantity int, unitPrice valueobject.Money) (LineItem, error) {
	if productID == uuid.Nil {
		return LineItem{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return LineItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_AMOUNT", "Unit price cannot be negative")
	}
	return LineItem{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice.Amount(),
		LineTotal: unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// LineItems is a slice of LineItem that implements GORM Scanner/Valuer for JSONB storage
type LineItems []LineItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Subtotal returns the sum of all line totals
func (l LineItems) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.LineTotal)
	}
	return total
}

// defaultGraceDays is how long a purchase may stay OVERDUE before a
// sweep marks it DEFAULTED.
const defaultGraceDays = 90

// Purchase represents a hire-purchase obligation aggregate root.
// It is the single source of truth for what a customer owes on a sale:
// amountPaid and outstandingBalance move only through confirmed payment
// application, and amountPaid + outstandingBalance == totalAmount holds
// after every mutation. Purchases are never deleted; refunds supersede.
type Purchase struct {
	shared.TenantAggregateRoot
	PurchaseNumber     string          `json:"purchase_number"`
	ShopID             uuid.UUID       `json:"shop_id"`
	CustomerID         uuid.UUID       `json:"customer_id"`
	PurchaseType       PurchaseType    `json:"purchase_type"`
	Items              LineItems       `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	InterestAmount     decimal.Decimal `json:"interest_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	DownPayment        decimal.Decimal `json:"down_payment"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	Installments       int             `json:"installments"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	InterestType       InterestType    `json:"interest_type"`
	TenorDays          int             `json:"tenor_days"`
	StartDate          time.Time       `json:"start_date"`
	DueDate            *time.Time      `json:"due_date"`
	Status             PurchaseStatus  `json:"status"`
	DeliveryStatus     DeliveryStatus  `json:"delivery_status"`
	ConfirmedPayments  int             `json:"confirmed_payments"`
	CompletedAt        *time.Time      `json:"completed_at"`
	DefaultedAt        *time.Time      `json:"defaulted_at"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchaseInput carries the sale inputs for building an obligation
type NewPurchaseInput struct {
	TenantID       uuid.UUID
	ShopID         uuid.UUID
	PurchaseNumber string
	CustomerID     uuid.UUID
	PurchaseType   PurchaseType
	Items          []LineItem
	DownPayment    valueobject.Money
	Installments   int
	TenorDays      int
	StartDate      time.Time
	Policy         *InterestPolicy
}

// NewPurchase builds a purchase obligation from sale inputs and the tenant
// interest policy.
//
// CASH purchases carry no interest and are fully settled at creation:
// amountPaid equals totalAmount and the status is COMPLETED. The caller is
// responsible for recording the settling payment and the stock deduction in
// the same transaction.
//
// CREDIT and LAYAWAY purchases validate the tenor against the policy,
// accrue interest (FLAT or MONTHLY pro-rata), clamp the down payment into
// [0, total], and start ACTIVE unless the down payment settles the total.
func NewPurchase(in NewPurchaseInput) (*Purchase, error) {
	if in.PurchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if in.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if in.ShopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if !in.PurchaseType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PURCHASE_TYPE", "Purchase type is not valid")
	}
	if len(in.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Purchase requires at least one product")
	}
	if in.DownPayment.IsNegative() {
		in.DownPayment = valueobject.ZeroGHS()
	}

	items := LineItems(in.Items)
	subtotal := items.Subtotal()
	if !subtotal.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Purchase subtotal must be positive")
	}

	startDate := in.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}

	p := &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(in.TenantID),
		PurchaseNumber:      in.PurchaseNumber,
		ShopID:              in.ShopID,
		CustomerID:          in.CustomerID,
		PurchaseType:        in.PurchaseType,
		Items:               items,
		Subtotal:            subtotal,
		Installments:        in.Installments,
		StartDate:           startDate,
		DeliveryStatus:      DeliveryStatusPending,
	}

	if in.PurchaseType.IsCash() {
		p.InterestAmount = decimal.Zero
		p.InterestType = InterestTypeFlat
		p.InterestRate = decimal.Zero
		p.TotalAmount = subtotal
		p.DownPayment = subtotal
		p.AmountPaid = subtotal
		p.OutstandingBalance = decimal.Zero
		p.Status = PurchaseStatusCompleted
		now := time.Now()
		p.CompletedAt = &now
		p.AddDomainEvent(NewPurchaseCreatedEvent(p))
		p.AddDomainEvent(NewPurchaseCompletedEvent(p))
		return p, nil
	}

	if in.Policy == nil {
		return nil, shared.NewDomainError("POLICY_REQUIRED", "Interest policy is required for non-cash purchases")
	}
	if in.TenorDays <= 0 {
		return nil, shared.NewDomainError("INVALID_TENOR", "Tenor must be a positive number of days")
	}
	if in.TenorDays > in.Policy.MaxTenorDays {
		return nil, shared.NewDomainErrorf("POLICY_VIOLATION",
			"Tenor %d days exceeds policy maximum of %d days", in.TenorDays, in.Policy.MaxTenorDays)
	}

	interest := in.Policy.InterestFor(valueobject.NewMoneyGHS(subtotal), in.TenorDays).RoundCurrency()
	total := subtotal.Add(interest.Amount())

	// Clamp down payment into [0, total]
	down := in.DownPayment.Amount()
	if down.GreaterThan(total) {
		down = total
	}

	dueDate := startDate.AddDate(0, 0, in.TenorDays)

	p.InterestAmount = interest.Amount()
	p.InterestRate = in.Policy.Rate
	p.InterestType = in.Policy.Type
	p.TenorDays = in.TenorDays
	p.TotalAmount = total
	p.DownPayment = down
	p.AmountPaid = down
	p.OutstandingBalance = total.Sub(down)
	p.DueDate = &dueDate

	if p.OutstandingBalance.IsZero() {
		now := time.Now()
		p.Status = PurchaseStatusCompleted
		p.CompletedAt = &now
	} else {
		p.Status = PurchaseStatusActive
	}

	p.AddDomainEvent(NewPurchaseCreatedEvent(p))
	if p.Status == PurchaseStatusCompleted {
		p.AddDomainEvent(NewPurchaseCompletedEvent(p))
	}

	return p, nil
}

// ApplyConfirmedPayment credits a confirmed payment against the obligation.
// Only confirmed payments move balances; pending payments are visible in
// the payment ledger but never touch amountPaid. Overpayment relative to
// the confirmed-paid total is rejected.
func (p *Purchase) ApplyConfirmedPayment(amount valueobject.Money) error {
	if !p.Status.CanReceivePayment() {
		return shared.NewDomainErrorf("STATE_CONFLICT", "Cannot apply payment to purchase in %s status", p.Status)
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(p.OutstandingBalance) {
		return shared.NewDomainErrorf("OVERPAYMENT_REJECTED",
			"Payment of %s exceeds outstanding balance of %s",
			amount.Amount().StringFixed(2), p.OutstandingBalance.StringFixed(2))
	}

	p.AmountPaid = p.AmountPaid.Add(amount.Amount())
	p.OutstandingBalance = p.TotalAmount.Sub(p.AmountPaid)
	p.ConfirmedPayments++

	if p.OutstandingBalance.IsZero() {
		now := time.Now()
		p.Status = PurchaseStatusCompleted
		p.CompletedAt = &now
		// Delivery is auto-scheduled once the obligation settles
		if p.DeliveryStatus == DeliveryStatusPending {
			p.DeliveryStatus = DeliveryStatusScheduled
		}
		p.AddDomainEvent(NewPurchaseCompletedEvent(p))
	} else {
		p.AddDomainEvent(NewPurchasePaymentAppliedEvent(p, amount))
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkOverdue flips an active purchase past its due date to OVERDUE.
// Returns true when the status changed.
func (p *Purchase) MarkOverdue(asOf time.Time) bool {
	if p.Status != PurchaseStatusActive || p.DueDate == nil {
		return false
	}
	if !asOf.After(*p.DueDate) {
		return false
	}
	p.Status = PurchaseStatusOverdue
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewPurchaseOverdueEvent(p))
	return true
}

// MarkDefaulted writes an overdue purchase down to DEFAULTED once it has
// been delinquent past the grace period. Returns true when the status changed.
func (p *Purchase) MarkDefaulted(asOf time.Time) bool {
	if p.Status != PurchaseStatusOverdue || p.DueDate == nil {
		return false
	}
	if p.DaysOverdue(asOf) <= defaultGraceDays {
		return false
	}
	now := time.Now()
	p.Status = PurchaseStatusDefaulted
	p.DefaultedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	p.AddDomainEvent(NewPurchaseDefaultedEvent(p))
	return true
}

// AdvanceDelivery moves the delivery status one step forward
// (PENDING -> SCHEDULED -> IN_TRANSIT -> DELIVERED).
func (p *Purchase) AdvanceDelivery() error {
	next := p.DeliveryStatus.next()
	if next == "" {
		return shared.NewDomainErrorf("STATE_CONFLICT", "Delivery already %s", p.DeliveryStatus)
	}
	p.DeliveryStatus = next
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// DaysOverdue returns how many whole days past due the purchase is as of
// the given instant (0 if not past due or no due date).
func (p *Purchase) DaysOverdue(asOf time.Time) int {
	if p.DueDate == nil || !asOf.After(*p.DueDate) {
		return 0
	}
	return int(asOf.Sub(*p.DueDate).Hours() / 24)
}

// IsOverdue returns true if the purchase is open and past its due date
func (p *Purchase) IsOverdue(asOf time.Time) bool {
	return p.Status.IsOpen() && p.DueDate != nil && asOf.After(*p.DueDate)
}

// CheckInvariant verifies amountPaid + outstandingBalance == totalAmount
// and outstandingBalance >= 0. Used by tests and the reconciliation audit.
func (p *Purchase) CheckInvariant() error {
	if !p.AmountPaid.Add(p.OutstandingBalance).Equal(p.TotalAmount) {
		return fmt.Errorf("purchase %s: paid %s + outstanding %s != total %s",
			p.PurchaseNumber, p.AmountPaid, p.OutstandingBalance, p.TotalAmount)
	}
	if p.OutstandingBalance.IsNegative() {
		return fmt.Errorf("purchase %s: negative outstanding balance %s", p.PurchaseNumber, p.OutstandingBalance)
	}
	return nil
}

// GetTotalAmountMoney returns the total amount as Money
func (p *Purchase) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(p.TotalAmount)
}

// GetAmountPaidMoney returns the paid amount as Money
func (p *Purchase) GetAmountPaidMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(p.AmountPaid)
}

// GetOutstandingMoney returns the outstanding balance as Money
func (p *Purchase) GetOutstandingMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(p.OutstandingBalance)
}

// IsCompleted returns true if the obligation is fully settled
func (p *Purchase) IsCompleted() bool {
	return p.Status == PurchaseStatusCompleted
}
