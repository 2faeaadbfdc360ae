package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/infrastructure/auth"
	"github.com/orderhub/backend/internal/interfaces/http/dto"
)

// Context keys for the authenticated caller
const (
	IdentityKey = "auth_identity"
	ClaimsKey   = "auth_claims"
)

// RequireAuth verifies the bearer token, rejects revoked tokens and attaches
// the caller identity to the request context.
func RequireAuth(tokens *auth.TokenService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "Authorization required")
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		revoked, err := blacklist.Contains(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Token verification failed"))
			return
		}
		if revoked {
			abortUnauthorized(c, "Token has been revoked")
			return
		}

		ident, err := claims.ResolveIdentity()
		if err != nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		c.Set(IdentityKey, ident)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireShop rejects callers whose account is not a shop. Must run after
// RequireAuth.
func RequireShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil || ident.Type != identity.UserTypeShop {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Only shop accounts can use this endpoint"))
			return
		}
		c.Next()
	}
}

// GetIdentity returns the caller identity set by RequireAuth, or nil
func GetIdentity(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if ident, ok := v.(*auth.Identity); ok {
			return ident
		}
	}
	return nil
}

// GetClaims returns the verified token claims set by RequireAuth, or nil
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
