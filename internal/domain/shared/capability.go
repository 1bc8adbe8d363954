package shared

import "github.com/google/uuid"

// Capability is a permission flag resolved once per request by the auth
// layer. Application services receive the resolved set through AuthContext
// and never look permissions up themselves.
type Capability string

const (
	CapPurchaseCreate    Capability = "purchase:create"
	CapPaymentRecord     Capability = "payment:record"
	CapPaymentConfirm    Capability = "payment:confirm"
	CapWalletLoad        Capability = "wallet:load"
	CapWalletConfirm     Capability = "wallet:confirm"
	CapCommissionRun     Capability = "commission:run"
	CapCommissionApprove Capability = "commission:approve"
	CapCommissionPay     Capability = "commission:pay"
	CapCashVerify        Capability = "cash:verify"
)

// AuthContext carries the identity and capability set of the caller.
// It is resolved by the HTTP middleware and passed into every mutating
// application operation.
type AuthContext struct {
	UserID       uuid.UUID
	TenantID     uuid.UUID
	ShopID       *uuid.UUID
	Role         string
	capabilities map[Capability]struct{}
}

// NewAuthContext creates an AuthContext with the given capability set
func NewAuthContext(userID, tenantID uuid.UUID, role string, caps ...Capability) AuthContext {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return AuthContext{
		UserID:       userID,
		TenantID:     tenantID,
		Role:         role,
		capabilities: set,
	}
}

// WithShop returns a copy of the AuthContext scoped to a shop
func (a AuthContext) WithShop(shopID uuid.UUID) AuthContext {
	a.ShopID = &shopID
	return a
}

// Can reports whether the caller holds the given capability
func (a AuthContext) Can(c Capability) bool {
	_, ok := a.capabilities[c]
	return ok
}

// Require returns ErrPermissionDenied unless the caller holds the capability
func (a AuthContext) Require(c Capability) error {
	if !a.Can(c) {
		return NewDomainErrorf("PERMISSION_DENIED", "Missing capability %q", c)
	}
	return nil
}

// Capabilities returns the capability set as a slice (for logging/auditing)
func (a AuthContext) Capabilities() []Capability {
	out := make([]Capability, 0, len(a.capabilities))
	for c := range a.capabilities {
		out = append(out, c)
	}
	return out
}
