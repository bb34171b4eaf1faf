package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
	"github.com/Ms-You/poje-remind/pkg/logger"
	"github.com/Ms-You/poje-remind/pkg/response"
)

const (
	// AuthorizationHeader carries "Bearer <access token>"
	AuthorizationHeader = "Authorization"
	// IdentityKey is the context key for the authenticated identity
	IdentityKey = "identity"
)

// Authenticator resolves a non-revoked access token to its identity
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*security.Identity, error)
}

// Authenticate sets the identity when a valid bearer token is present.
// Requests without one continue anonymously; RequireAuth decides whether that is allowed.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Get().Debug("bearer token rejected",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Authenticate set an identity
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			response.Unauthorized(c, "인증이 필요합니다.")
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the identity holds role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.Unauthorized(c, "인증이 필요합니다.")
			return
		}
		if !identity.HasAuthority(role) {
			response.Forbidden(c, "접근 권한이 없습니다.")
			return
		}
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header
func BearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthorizationHeader)
	prefix := security.GrantType + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// GetIdentity returns the identity set by Authenticate
func GetIdentity(c *gin.Context) (*security.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*security.Identity)
	return identity, ok && identity != nil
}

// LoginID returns the caller's login id, or "" for anonymous requests
func LoginID(c *gin.Context) string {
	if identity, ok := GetIdentity(c); ok {
		return identity.LoginID
	}
	return ""
}
