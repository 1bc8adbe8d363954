package config

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
)

// PolicyProvider serves the interest policy from configuration. All tenants
// share the configured policy; per-tenant overrides would go through a
// repository-backed provider instead.
type PolicyProvider struct {
	policy *ledger.InterestPolicy
}

// NewPolicyProvider builds a PolicyProvider from the ledger config section
func NewPolicyProvider(cfg LedgerConfig) (*PolicyProvider, error) {
	policy, err := ledger.NewInterestPolicy(
		decimal.NewFromFloat(cfg.DefaultInterestRate),
		ledger.InterestType(cfg.DefaultInterestType),
		cfg.MaxTenorDays,
	)
	if err != nil {
		return nil, err
	}
	return &PolicyProvider{policy: policy}, nil
}

// PolicyFor returns the interest policy for a tenant
func (p *PolicyProvider) PolicyFor(ctx context.Context, tenantID uuid.UUID) (*ledger.InterestPolicy, error) {
	return p.policy, nil
}
