package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authsvc "github.com/medicore/hms-api/internal/service/auth"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/httputil"
)

// Context keys set by Authenticate.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "userRole"
	ContextTokenKey  = "accessToken"
)

type AuthMiddleware struct {
	authSvc *authsvc.Service
}

func NewAuthMiddleware(authSvc *authsvc.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate validates the bearer token and stores the caller's identity
// on the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized("missing authorization header", nil))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httputil.RespondWithError(c, apperrors.Unauthorized("invalid authorization header", nil))
			c.Abort()
			return
		}

		claims, err := m.authSvc.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextTokenKey, parts[1])
		c.Next()
	}
}

// RequireRole allows only callers holding one of the given roles. It must
// run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		httputil.RespondWithError(c, apperrors.Forbidden("insufficient permissions", nil))
		c.Abort()
	}
}

// UserID returns the authenticated user's ID.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// Role returns the authenticated user's role, or "" when unauthenticated.
func Role(c *gin.Context) string {
	if v, ok := c.Get(ContextRoleKey); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// Token returns the raw bearer token of the current request.
func Token(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
