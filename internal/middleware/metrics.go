package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/service"
)

const (
	unmatchedRoute = "unmatched"
	staticWildcard = "/*filepath"
)

// Metrics observes every request under its route template, so each student
// id or upload file does not become its own series.
func Metrics(recorder *service.MetricsService) gin.HandlerFunc {
	if recorder == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		recorder.ObserveHTTPRequest(c.Request.Method, routeLabel(c.FullPath()), c.Writer.Status(), time.Since(started))
	}
}

func routeLabel(route string) string {
	if route == "" {
		return unmatchedRoute
	}
	if strings.HasSuffix(route, staticWildcard) {
		return strings.TrimSuffix(route, staticWildcard)
	}
	return route
}
