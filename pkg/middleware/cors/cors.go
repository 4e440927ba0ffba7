// Package cors lets a browser front end on another origin call the portal API
// with the session cookie attached.
package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowHeaders = "Content-Type, X-Requested-With, X-Request-ID"
	preflightTTL = "600"
)

// origins is the configured allow-list; empty allows any origin.
type origins map[string]struct{}

func newOrigins(list []string) origins {
	set := make(origins, len(list))
	for _, o := range list {
		set[normalize(o)] = struct{}{}
	}
	return set
}

func (o origins) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if len(o) == 0 {
		return true
	}
	_, ok := o[normalize(origin)]
	return ok
}

func normalize(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}

// New echoes allowed origins back with credentials enabled. A wildcard is never
// sent since browsers drop cookies on wildcard responses.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowed := newOrigins(allowedOrigins)

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		ok := allowed.allows(origin)
		if ok {
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}
		if ok {
			header.Set("Access-Control-Allow-Methods", allowMethods)
			header.Set("Access-Control-Allow-Headers", allowHeaders)
			header.Set("Access-Control-Max-Age", preflightTTL)
		}
		c.AbortWithStatus(http.StatusNoContent)
	}
}
