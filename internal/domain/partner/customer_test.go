package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

func newTestCustomer(t *testing.T) *Customer {
	t.Helper()
	c, err := NewCustomer(uuid.New(), "cust-001", "Ama Mensah", "+233 24 123 4567")
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	c := newTestCustomer(t)

	assert.Equal(t, "CUST-001", c.Code, "code is uppercased")
	assert.Equal(t, CustomerStatusActive, c.Status)
	assert.True(t, c.WalletBalance.IsZero())
	assert.Nil(t, c.AssignedCollectorID)
	assert.Len(t, c.GetDomainEvents(), 1)
}

func TestNewCustomer_Validation(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		custName string
		phone    string
		wantCode string
	}{
		{"empty code", "", "Ama", "", "INVALID_CODE"},
		{"bad code chars", "cust 001", "Ama", "", "INVALID_CODE"},
		{"empty name", "C1", "", "", "INVALID_NAME"},
		{"bad phone", "C1", "Ama", "not-a-phone", "INVALID_PHONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomer(uuid.New(), tt.code, tt.custName, tt.phone)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantCode, de.Code)
		})
	}
}

func TestCustomer_WalletCreditAndDebit(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.CreditWallet(valueobject.NewMoneyGHS(decimal.NewFromInt(150))))
	assert.True(t, c.WalletBalance.Equal(decimal.NewFromInt(150)))

	require.NoError(t, c.DebitWallet(valueobject.NewMoneyGHS(decimal.NewFromInt(100))))
	assert.True(t, c.WalletBalance.Equal(decimal.NewFromInt(50)))
}

func TestCustomer_DebitWallet_NeverNegative(t *testing.T) {
	c := newTestCustomer(t)
	require.NoError(t, c.CreditWallet(valueobject.NewMoneyGHS(decimal.NewFromInt(50))))

	err := c.DebitWallet(valueobject.NewMoneyGHS(decimal.NewFromInt(51)))
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "INSUFFICIENT_WALLET_BALANCE", de.Code)
	assert.True(t, c.WalletBalance.Equal(decimal.NewFromInt(50)), "balance untouched on failure")
}

func TestCustomer_WalletRejectsNonPositiveAmounts(t *testing.T) {
	c := newTestCustomer(t)

	assert.Error(t, c.CreditWallet(valueobject.ZeroGHS()))
	assert.Error(t, c.CreditWallet(valueobject.NewMoneyGHS(decimal.NewFromInt(-5))))
	assert.Error(t, c.DebitWallet(valueobject.ZeroGHS()))
}

func TestCustomer_AssignCollector(t *testing.T) {
	c := newTestCustomer(t)
	collectorID := uuid.New()

	require.NoError(t, c.AssignCollector(collectorID))
	require.NotNil(t, c.AssignedCollectorID)
	assert.Equal(t, collectorID, *c.AssignedCollectorID)

	assert.Error(t, c.AssignCollector(uuid.Nil))

	c.UnassignCollector()
	assert.Nil(t, c.AssignedCollectorID)
}

func TestCustomer_StatusTransitions(t *testing.T) {
	c := newTestCustomer(t)

	assert.Error(t, c.Activate(), "already active")

	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive())
	require.NoError(t, c.Activate())

	require.NoError(t, c.Blacklist())
	assert.True(t, c.IsBlacklisted())
	assert.Error(t, c.Blacklist(), "already blacklisted")
}

func TestCustomer_SetGuarantor(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.SetGuarantor("Kofi Boateng", "+233 20 765 4321"))
	assert.Equal(t, "Kofi Boateng", c.GuarantorName)

	assert.Error(t, c.SetGuarantor("ok", "bad phone!"))
}

func TestCustomer_SetCreditLimit(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.SetCreditLimit(decimal.NewFromInt(5000)))
	assert.True(t, c.CreditLimit.Equal(decimal.NewFromInt(5000)))

	assert.Error(t, c.SetCreditLimit(decimal.NewFromInt(-1)))
}
