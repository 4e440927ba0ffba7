package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/session"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

// ContextPrincipalKey is the gin context key storing the request principal.
const ContextPrincipalKey = "principal"

// Principal resolves the session into a request-scoped principal. It never blocks.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextPrincipalKey, &models.Principal{IsAdmin: session.IsAdmin(c)})
		c.Next()
	}
}

// PrincipalFrom returns the principal attached by Principal, or nil.
func PrincipalFrom(c *gin.Context) *models.Principal {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}

// RequireAdmin rejects requests whose principal is not admin with 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !PrincipalFrom(c).Admin() {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
