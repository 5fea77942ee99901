package auth

import (
	"net/http"
	"strings"

	"crm-backend/internal/access"
	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth
const (
	PrincipalKey = "principal"
	UserIDKey    = "user_id"
)

// Authenticator resolves a bearer token into the acting user
type Authenticator interface {
	Authenticate(token string) (*access.Principal, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAuth validates the bearer token and stores the principal in the context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, apperrors.ErrAuthenticationRequired)
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		}

		principal, err := m.authenticator.Authenticate(tokenString)
		if err != nil {
			if apperrors.IsAuthentication(err) {
				abortUnauthorized(c, err)
				return
			}
			logger.WithContext(c).WithError(err).Error("failed to authenticate request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}

		// Set user context
		c.Set(PrincipalKey, principal)
		c.Set(UserIDKey, principal.UserID)
		c.Set(logger.EmailKey, principal.Email)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
}

// GetPrincipal is a helper function to extract the acting user from context.
// It returns nil when the request is anonymous.
func GetPrincipal(c *gin.Context) *access.Principal {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}

	principal, _ := value.(*access.Principal)
	return principal
}

// GetUserEmail is a helper function to extract user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(logger.EmailKey)
	if !exists {
		return "", false
	}

	emailStr, ok := email.(string)
	return emailStr, ok
}
