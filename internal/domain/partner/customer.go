package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive      CustomerStatus = "active"
	CustomerStatusInactive    CustomerStatus = "inactive"
	CustomerStatusBlacklisted CustomerStatus = "blacklisted" // Blocked after default
)

// Customer represents a hire-purchase customer. It is the aggregate root for
// customer operations and carries the wallet balance: the wallet moves only
// through confirmed wallet transactions, never by direct balance writes.
type Customer struct {
	shared.TenantAggregateRoot
	Code                string          `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name                string          `json:"name" gorm:"type:varchar(200);not null"`
	Status              CustomerStatus  `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	Phone               string          `json:"phone,omitempty" gorm:"type:varchar(50);index"`
	Email               string          `json:"email,omitempty" gorm:"type:varchar(200);index"`
	Address             string          `json:"address,omitempty" gorm:"type:text"`
	GhanaCardNumber     string          `json:"ghana_card_number,omitempty" gorm:"type:varchar(50);index"` // National ID used for credit vetting
	GuarantorName       string          `json:"guarantor_name,omitempty" gorm:"type:varchar(200)"`
	GuarantorPhone      string          `json:"guarantor_phone,omitempty" gorm:"type:varchar(50)"`
	WalletBalance       decimal.Decimal `json:"wallet_balance" gorm:"type:decimal(18,4);not null;default:0"`
	CreditLimit         decimal.Decimal `json:"credit_limit" gorm:"type:decimal(18,4);not null;default:0"`
	AssignedCollectorID *uuid.UUID      `json:"assigned_collector_id,omitempty" gorm:"type:uuid;index"` // Collector responsible for field collections
	Notes               string          `json:"notes,omitempty" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, code, name, phone string) (*Customer, error) {
	if err := validateCustomerCode(code); err != nil {
		return nil, err
	}
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Phone:               phone,
		Status:              CustomerStatusActive,
		WalletBalance:       decimal.Zero,
		CreditLimit:         decimal.Zero,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(phone, email, address string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetGuarantor records the guarantor vouching for the customer's credit
func (c *Customer) SetGuarantor(name, phone string) error {
	if name != "" && len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Guarantor name cannot exceed 200 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	c.GuarantorName = name
	c.GuarantorPhone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetGhanaCard sets the customer's national ID number
func (c *Customer) SetGhanaCard(number string) error {
	if number != "" && len(number) > 50 {
		return shared.NewDomainError("INVALID_ID_NUMBER", "ID number cannot exceed 50 characters")
	}
	c.GhanaCardNumber = number
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetCreditLimit sets the customer's credit limit
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// AssignCollector assigns a debt collector to this customer's account
func (c *Customer) AssignCollector(collectorID uuid.UUID) error {
	if collectorID == uuid.Nil {
		return shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}

	c.AssignedCollectorID = &collectorID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCollectorAssignedEvent(c, collectorID))

	return nil
}

// UnassignCollector removes the collector assignment
func (c *Customer) UnassignCollector() {
	c.AssignedCollectorID = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// CreditWallet adds to the customer's wallet balance. Only the wallet
// transaction confirmation path may call this.
func (c *Customer) CreditWallet(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}

	oldBalance := c.WalletBalance
	c.WalletBalance = c.WalletBalance.Add(amount.Amount())
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewWalletBalanceChangedEvent(c, oldBalance, c.WalletBalance, "credit"))

	return nil
}

// DebitWallet deducts from the customer's wallet balance. The wallet can
// never go negative.
func (c *Customer) DebitWallet(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if c.WalletBalance.LessThan(amount.Amount()) {
		return shared.NewDomainErrorf("INSUFFICIENT_WALLET_BALANCE",
			"Wallet balance %s is less than debit of %s",
			c.WalletBalance.StringFixed(2), amount.Amount().StringFixed(2))
	}

	oldBalance := c.WalletBalance
	c.WalletBalance = c.WalletBalance.Sub(amount.Amount())
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewWalletBalanceChangedEvent(c, oldBalance, c.WalletBalance, "debit"))

	return nil
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Blacklist blocks the customer from new credit purchases after a default
func (c *Customer) Blacklist() error {
	if c.Status == CustomerStatusBlacklisted {
		return shared.NewDomainError("ALREADY_BLACKLISTED", "Customer is already blacklisted")
	}

	c.Status = CustomerStatusBlacklisted
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// IsBlacklisted returns true if the customer is blocked from credit
func (c *Customer) IsBlacklisted() bool {
	return c.Status == CustomerStatusBlacklisted
}

// GetWalletBalanceMoney returns the wallet balance as Money
func (c *Customer) GetWalletBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyGHS(c.WalletBalance)
}

// HasWalletBalance returns true if the wallet carries funds
func (c *Customer) HasWalletBalance() bool {
	return c.WalletBalance.GreaterThan(decimal.Zero)
}

// Validation functions

func validateCustomerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Customer code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
