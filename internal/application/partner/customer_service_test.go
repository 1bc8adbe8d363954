package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
)

func newCustomerService(repo *MockCustomerRepository, audit *MockAuditSink) *CustomerService {
	return NewCustomerService(repo, audit, zap.NewNop())
}

func staffAuth(tenantID uuid.UUID) shared.AuthContext {
	return shared.NewAuthContext(uuid.New(), tenantID, "manager")
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	auth := staffAuth(tenantID)

	t.Run("creates customer with uppercased code", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		audit := new(MockAuditSink)
		svc := newCustomerService(repo, audit)

		repo.On("FindByCode", ctx, tenantID, "cust-001").Return(nil, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)
		audit.On("Record", ctx, auth.UserID, "customer.created", "Customer", mock.Anything, mock.Anything).Return()

		customer, err := svc.Create(ctx, auth, CreateCustomerRequest{
			Code:        "cust-001",
			Name:        "Akosua Mensah",
			Phone:       "+233201234567",
			CreditLimit: decimal.NewFromInt(5000),
		})

		require.NoError(t, err)
		assert.Equal(t, "CUST-001", customer.Code)
		assert.Equal(t, tenantID, customer.TenantID)
		assert.Equal(t, partner.CustomerStatusActive, customer.Status)
		assert.True(t, customer.CreditLimit.Equal(decimal.NewFromInt(5000)))
		assert.True(t, customer.WalletBalance.IsZero())
		repo.AssertExpectations(t)
		audit.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		audit := new(MockAuditSink)
		svc := newCustomerService(repo, audit)

		existing, err := partner.NewCustomer(tenantID, "CUST-001", "Existing", "")
		require.NoError(t, err)
		repo.On("FindByCode", ctx, tenantID, "CUST-001").Return(existing, nil)

		_, err = svc.Create(ctx, auth, CreateCustomerRequest{Code: "CUST-001", Name: "New"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid code characters", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		audit := new(MockAuditSink)
		svc := newCustomerService(repo, audit)

		repo.On("FindByCode", ctx, tenantID, "bad code!").Return(nil, nil)

		_, err := svc.Create(ctx, auth, CreateCustomerRequest{Code: "bad code!", Name: "Name"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CODE", domainErr.Code)
	})
}

func TestAssignCollector(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	auth := staffAuth(tenantID)
	collectorID := uuid.New()

	t.Run("assigns collector and bumps version", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		audit := new(MockAuditSink)
		svc := newCustomerService(repo, audit)

		customer, err := partner.NewCustomer(tenantID, "CUST-002", "Kwame", "")
		require.NoError(t, err)
		versionBefore := customer.Version

		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)
		audit.On("Record", ctx, auth.UserID, "customer.collector_assigned", "Customer", customer.ID, mock.Anything).Return()

		updated, err := svc.AssignCollector(ctx, auth, customer.ID, collectorID)

		require.NoError(t, err)
		require.NotNil(t, updated.AssignedCollectorID)
		assert.Equal(t, collectorID, *updated.AssignedCollectorID)
		assert.Equal(t, versionBefore+1, updated.Version)
		repo.AssertExpectations(t)
	})

	t.Run("unknown customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		audit := new(MockAuditSink)
		svc := newCustomerService(repo, audit)

		missing := uuid.New()
		repo.On("FindByIDForTenant", ctx, tenantID, missing).Return(nil, nil)

		_, err := svc.AssignCollector(ctx, auth, missing, collectorID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CUSTOMER_NOT_FOUND", domainErr.Code)
	})
}

func TestBlacklist(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	auth := staffAuth(tenantID)

	t.Run("blacklists active customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		audit := new(MockAuditSink)
		svc := newCustomerService(repo, audit)

		customer, err := partner.NewCustomer(tenantID, "CUST-003", "Yaw", "")
		require.NoError(t, err)

		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)
		audit.On("Record", ctx, auth.UserID, "customer.blacklisted", "Customer", customer.ID, mock.Anything).Return()

		updated, err := svc.Blacklist(ctx, auth, customer.ID)

		require.NoError(t, err)
		assert.Equal(t, partner.CustomerStatusBlacklisted, updated.Status)
		assert.True(t, updated.IsBlacklisted())
	})

	t.Run("blacklisting twice is a conflict", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		audit := new(MockAuditSink)
		svc := newCustomerService(repo, audit)

		customer, err := partner.NewCustomer(tenantID, "CUST-004", "Efua", "")
		require.NoError(t, err)
		require.NoError(t, customer.Blacklist())

		repo.On("FindByIDForTenant", ctx, tenantID, customer.ID).Return(customer, nil)

		_, err = svc.Blacklist(ctx, auth, customer.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_BLACKLISTED", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestListCustomers(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	auth := staffAuth(tenantID)

	repo := new(MockCustomerRepository)
	audit := new(MockAuditSink)
	svc := newCustomerService(repo, audit)

	c1, err := partner.NewCustomer(tenantID, "CUST-005", "Adwoa", "")
	require.NoError(t, err)
	c2, err := partner.NewCustomer(tenantID, "CUST-006", "Kofi", "")
	require.NoError(t, err)

	filter := partner.CustomerFilter{Page: 1, PageSize: 20}
	repo.On("FindAllForTenant", ctx, tenantID, filter).Return([]partner.Customer{*c1, *c2}, nil)
	repo.On("CountForTenant", ctx, tenantID, filter).Return(int64(2), nil)

	customers, total, err := svc.List(ctx, auth, filter)

	require.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.Equal(t, int64(2), total)
}
