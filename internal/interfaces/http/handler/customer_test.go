package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	partnerapp "github.com/safo-124/high-purchase-sub007/internal/application/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/middleware"
)

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.CustomerFilter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByCollector(ctx context.Context, tenantID, collectorID uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, collectorID)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.CustomerFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type noopAuditSink struct{}

func (noopAuditSink) Record(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, metadata map[string]any) {
}

// newCustomerRouter mounts the customer handler behind a middleware that
// injects a fixed AuthContext, standing in for the JWT middleware
func newCustomerRouter(repo *mockCustomerRepo, authCtx shared.AuthContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	svc := partnerapp.NewCustomerService(repo, noopAuditSink{}, zap.NewNop())
	h := NewCustomerHandler(svc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.AuthContextKey, authCtx)
		c.Next()
	})
	h.RegisterRoutes(api)
	return engine
}

func TestCustomerHandler_Create(t *testing.T) {
	tenantID := uuid.New()
	authCtx := shared.NewAuthContext(uuid.New(), tenantID, "manager")

	t.Run("creates customer", func(t *testing.T) {
		repo := new(mockCustomerRepo)
		repo.On("FindByCode", mock.Anything, tenantID, "CUST-100").Return(nil, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

		router := newCustomerRouter(repo, authCtx)
		body := `{"code":"CUST-100","name":"Abena Owusu","phone":"+233209876543","credit_limit":"2500.00"}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"code":"CUST-100"`)
		assert.Contains(t, w.Body.String(), `"success":true`)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code maps to 409", func(t *testing.T) {
		repo := new(mockCustomerRepo)
		existing, err := partner.NewCustomer(tenantID, "CUST-100", "Existing", "")
		require.NoError(t, err)
		repo.On("FindByCode", mock.Anything, tenantID, "CUST-100").Return(existing, nil)

		router := newCustomerRouter(repo, authCtx)
		body := `{"code":"CUST-100","name":"Abena Owusu"}`

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ALREADY_EXISTS")
	})

	t.Run("missing name fails binding", func(t *testing.T) {
		repo := new(mockCustomerRepo)
		router := newCustomerRouter(repo, authCtx)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(`{"code":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerHandler_Get(t *testing.T) {
	tenantID := uuid.New()
	authCtx := shared.NewAuthContext(uuid.New(), tenantID, "manager")

	t.Run("unknown customer maps to 404", func(t *testing.T) {
		repo := new(mockCustomerRepo)
		missing := uuid.New()
		repo.On("FindByIDForTenant", mock.Anything, tenantID, missing).Return(nil, nil)

		router := newCustomerRouter(repo, authCtx)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+missing.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "CUSTOMER_NOT_FOUND")
	})

	t.Run("bad uuid maps to 400", func(t *testing.T) {
		repo := new(mockCustomerRepo)
		router := newCustomerRouter(repo, authCtx)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_MissingAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := new(mockCustomerRepo)
	svc := partnerapp.NewCustomerService(repo, noopAuditSink{}, zap.NewNop())
	h := NewCustomerHandler(svc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
