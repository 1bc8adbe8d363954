package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingTenantID  = errors.New("missing tenant_id in claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims represents custom JWT claims. Capabilities listed explicitly in the
// token extend the caller's role defaults; they never shrink them.
type Claims struct {
	jwt.RegisteredClaims
	TenantID     string   `json:"tenant_id"`
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Role         string   `json:"role"`
	ShopID       string   `json:"shop_id,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// roleCapabilities maps each role to its default capability set
var roleCapabilities = map[string][]shared.Capability{
	"admin": {
		shared.CapPurchaseCreate, shared.CapPaymentRecord, shared.CapPaymentConfirm,
		shared.CapWalletLoad, shared.CapWalletConfirm,
		shared.CapCommissionRun, shared.CapCommissionApprove, shared.CapCommissionPay,
		shared.CapCashVerify,
	},
	"manager": {
		shared.CapPurchaseCreate, shared.CapPaymentRecord, shared.CapPaymentConfirm,
		shared.CapWalletLoad, shared.CapWalletConfirm,
		shared.CapCashVerify,
	},
	"finance": {
		shared.CapPaymentConfirm, shared.CapWalletConfirm,
		shared.CapCommissionRun, shared.CapCommissionApprove, shared.CapCommissionPay,
		shared.CapCashVerify,
	},
	"sales": {
		shared.CapPurchaseCreate, shared.CapPaymentRecord, shared.CapWalletLoad,
	},
	"collector": {
		shared.CapPaymentRecord, shared.CapWalletLoad,
	},
	// cashier has no explicit capabilities: submitting a daily summary is
	// open to all authenticated staff
	"cashier": {},
}

// CapabilitiesForRole returns the default capability set for a role
func CapabilitiesForRole(role string) []shared.Capability {
	return roleCapabilities[role]
}

// JWTService issues and validates access tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	TenantID          uuid.UUID
	UserID            uuid.UUID
	Username          string
	Role              string
	ShopID            *uuid.UUID
	ExtraCapabilities []shared.Capability
}

// GenerateToken issues a signed access token
func (s *JWTService) GenerateToken(input GenerateTokenInput) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	extras := make([]string, len(input.ExtraCapabilities))
	for i, c := range input.ExtraCapabilities {
		extras[i] = string(c)
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID:     input.TenantID.String(),
		UserID:       input.UserID.String(),
		Username:     input.Username,
		Role:         input.Role,
		Capabilities: extras,
	}
	if input.ShopID != nil {
		claims.ShopID = input.ShopID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates an access token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TenantID == "" {
		return nil, ErrMissingTenantID
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// AuthContext resolves the claims into the capability set the application
// layer consumes: role defaults plus any extra capabilities in the token.
func (c *Claims) AuthContext() (shared.AuthContext, error) {
	tenantID, err := uuid.Parse(c.TenantID)
	if err != nil {
		return shared.AuthContext{}, ErrInvalidClaims
	}
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return shared.AuthContext{}, ErrInvalidClaims
	}

	caps := append([]shared.Capability(nil), roleCapabilities[c.Role]...)
	for _, extra := range c.Capabilities {
		caps = append(caps, shared.Capability(extra))
	}

	auth := shared.NewAuthContext(userID, tenantID, c.Role, caps...)
	if c.ShopID != "" {
		shopID, err := uuid.Parse(c.ShopID)
		if err != nil {
			return shared.AuthContext{}, ErrInvalidClaims
		}
		auth = auth.WithShop(shopID)
	}
	return auth, nil
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetAccessTokenExpiration returns the access token expiration duration
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.expiration
}
