package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/auth"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/logger"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	AuthContextKey = "auth_context"
	ClaimsKey      = "jwt_claims"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTConfig configures the JWT authentication middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional; revoked token JTIs are rejected when set
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// JWTAuth authenticates requests with a bearer token and resolves the
// caller's AuthContext. Unauthenticated requests are rejected; routes that
// need no auth simply don't get this middleware.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, cfg.Logger, "UNAUTHORIZED", "Missing or malformed authorization header")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg.Logger, "UNAUTHORIZED", "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			code, message := authErrorCode(err)
			abortUnauthorized(c, cfg.Logger, code, message)
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			revoked, err := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open: a blacklist outage must not take collections down
				if cfg.Logger != nil {
					cfg.Logger.Error("token blacklist check failed",
						zap.String("jti", claims.ID), zap.Error(err))
				}
			} else if revoked {
				abortUnauthorized(c, cfg.Logger, "TOKEN_REVOKED", "Token has been revoked")
				return
			}
		}

		authCtx, err := claims.AuthContext()
		if err != nil {
			abortUnauthorized(c, cfg.Logger, "TOKEN_INVALID", "Token claims are invalid")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(AuthContextKey, authCtx)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithUserID(ctx, log, claims.UserID)
		ctx, _ = logger.WithTenantID(ctx, log, claims.TenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func authErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "TOKEN_EXPIRED", "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "TOKEN_INVALID", "Token is not yet valid"
	default:
		return "TOKEN_INVALID", "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, code, message string) {
	if log != nil {
		log.Warn("authentication failed",
			zap.String("code", code),
			zap.String("path", c.Request.URL.Path))
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetAuthContext retrieves the caller's AuthContext from the gin context
func GetAuthContext(c *gin.Context) (shared.AuthContext, bool) {
	v, exists := c.Get(AuthContextKey)
	if !exists {
		return shared.AuthContext{}, false
	}
	authCtx, ok := v.(shared.AuthContext)
	return authCtx, ok
}

// GetClaims retrieves the raw JWT claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
