package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

// CustomerService handles customer account operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	audit        shared.AuditSink
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	audit shared.AuditSink,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		audit:        audit,
		logger:       logger,
	}
}

// CreateCustomerRequest carries the input for customer registration
type CreateCustomerRequest struct {
	Code            string `validate:"required,max=50"`
	Name            string `validate:"required,max=200"`
	Phone           string `validate:"max=50"`
	Email           string `validate:"omitempty,email,max=200"`
	Address         string `validate:"max=500"`
	GhanaCardNumber string `validate:"max=50"`
	GuarantorName   string `validate:"max=200"`
	GuarantorPhone  string `validate:"max=50"`
	CreditLimit     decimal.Decimal
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, auth shared.AuthContext, req CreateCustomerRequest) (*partner.Customer, error) {
	existing, err := s.customerRepo.FindByCode(ctx, auth.TenantID, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer code: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	customer, err := partner.NewCustomer(auth.TenantID, req.Code, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	customer.SetCreatedBy(auth.UserID)

	if req.Email != "" || req.Address != "" {
		if err := customer.SetContact(req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}
	if req.GuarantorName != "" || req.GuarantorPhone != "" {
		if err := customer.SetGuarantor(req.GuarantorName, req.GuarantorPhone); err != nil {
			return nil, err
		}
	}
	if req.GhanaCardNumber != "" {
		if err := customer.SetGhanaCard(req.GhanaCardNumber); err != nil {
			return nil, err
		}
	}
	if !req.CreditLimit.IsZero() {
		if err := customer.SetCreditLimit(req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "customer.created", "Customer", customer.ID, map[string]any{
		"code": customer.Code,
		"name": customer.Name,
	})
	return customer, nil
}

// UpdateCustomerRequest carries the updatable customer fields
type UpdateCustomerRequest struct {
	Name            string `validate:"required,max=200"`
	Phone           string `validate:"max=50"`
	Email           string `validate:"omitempty,email,max=200"`
	Address         string `validate:"max=500"`
	GhanaCardNumber string `validate:"max=50"`
	GuarantorName   string `validate:"max=200"`
	GuarantorPhone  string `validate:"max=50"`
}

// Update updates a customer's details
func (s *CustomerService) Update(ctx context.Context, auth shared.AuthContext, customerID uuid.UUID, req UpdateCustomerRequest) (*partner.Customer, error) {
	customer, err := s.load(ctx, auth.TenantID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name); err != nil {
		return nil, err
	}
	if err := customer.SetContact(req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := customer.SetGuarantor(req.GuarantorName, req.GuarantorPhone); err != nil {
		return nil, err
	}
	if err := customer.SetGhanaCard(req.GhanaCardNumber); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return customer, nil
}

// SetCreditLimit sets the customer's credit limit
func (s *CustomerService) SetCreditLimit(ctx context.Context, auth shared.AuthContext, customerID uuid.UUID, limit decimal.Decimal) (*partner.Customer, error) {
	customer, err := s.load(ctx, auth.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.SetCreditLimit(limit); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "customer.credit_limit_set", "Customer", customer.ID, map[string]any{
		"credit_limit": limit.StringFixed(2),
	})
	return customer, nil
}

// AssignCollector assigns a field collector to the customer's account
func (s *CustomerService) AssignCollector(ctx context.Context, auth shared.AuthContext, customerID, collectorID uuid.UUID) (*partner.Customer, error) {
	customer, err := s.load(ctx, auth.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.AssignCollector(collectorID); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "customer.collector_assigned", "Customer", customer.ID, map[string]any{
		"collector_id": collectorID.String(),
	})
	return customer, nil
}

// UnassignCollector removes the collector assignment
func (s *CustomerService) UnassignCollector(ctx context.Context, auth shared.AuthContext, customerID uuid.UUID) (*partner.Customer, error) {
	customer, err := s.load(ctx, auth.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	customer.UnassignCollector()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return customer, nil
}

// Activate re-activates a customer account
func (s *CustomerService) Activate(ctx context.Context, auth shared.AuthContext, customerID uuid.UUID) (*partner.Customer, error) {
	return s.transition(ctx, auth, customerID, "customer.activated", (*partner.Customer).Activate)
}

// Deactivate deactivates a customer account
func (s *CustomerService) Deactivate(ctx context.Context, auth shared.AuthContext, customerID uuid.UUID) (*partner.Customer, error) {
	return s.transition(ctx, auth, customerID, "customer.deactivated", (*partner.Customer).Deactivate)
}

// Blacklist blocks a customer from new credit purchases
func (s *CustomerService) Blacklist(ctx context.Context, auth shared.AuthContext, customerID uuid.UUID) (*partner.Customer, error) {
	return s.transition(ctx, auth, customerID, "customer.blacklisted", (*partner.Customer).Blacklist)
}

func (s *CustomerService) transition(
	ctx context.Context,
	auth shared.AuthContext,
	customerID uuid.UUID,
	action string,
	fn func(*partner.Customer) error,
) (*partner.Customer, error) {
	customer, err := s.load(ctx, auth.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if err := fn(customer); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, action, "Customer", customer.ID, nil)
	return customer, nil
}

// Get returns a customer by ID
func (s *CustomerService) Get(ctx context.Context, auth shared.AuthContext, customerID uuid.UUID) (*partner.Customer, error) {
	return s.load(ctx, auth.TenantID, customerID)
}

// GetByCode returns a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, auth shared.AuthContext, code string) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByCode(ctx, auth.TenantID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}
	return customer, nil
}

// List returns customers matching the filter with a total count
func (s *CustomerService) List(ctx context.Context, auth shared.AuthContext, filter partner.CustomerFilter) ([]partner.Customer, int64, error) {
	customers, err := s.customerRepo.FindAllForTenant(ctx, auth.TenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	total, err := s.customerRepo.CountForTenant(ctx, auth.TenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return customers, total, nil
}

// ListByCollector returns the customers assigned to a collector
func (s *CustomerService) ListByCollector(ctx context.Context, auth shared.AuthContext, collectorID uuid.UUID) ([]partner.Customer, error) {
	customers, err := s.customerRepo.FindByCollector(ctx, auth.TenantID, collectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) load(ctx context.Context, tenantID, customerID uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}
	return customer, nil
}
