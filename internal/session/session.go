// Package session keeps the admin flag in the gin session.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const adminFlag = "IS_ADMIN"

// SetAdmin marks the session as admin. Any previous values are dropped.
func SetAdmin(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(adminFlag, true)
	return s.Save()
}

// IsAdmin reports whether the session carries the admin flag.
func IsAdmin(c *gin.Context) bool {
	s := sessions.Default(c)
	if obj := s.Get(adminFlag); obj != nil {
		if admin, ok := obj.(bool); ok {
			return admin
		}
	}
	return false
}

// Clear destroys the session and expires its cookie.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return s.Save()
}
