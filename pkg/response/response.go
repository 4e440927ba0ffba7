package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// ErrorBody is the only shape returned for failed requests.
type ErrorBody struct {
	Message string `json:"message"`
}

// SuccessBody acknowledges mutations that have nothing else to return.
type SuccessBody struct {
	Success bool `json:"success"`
}

// JSON sends the payload as the response body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Success responds with {"success": true}.
func Success(c *gin.Context) {
	JSON(c, http.StatusOK, SuccessBody{Success: true})
}

// Error converts the error to its HTTP status and a {message} body.
// Wrapped causes are attached to the gin context for logging and never serialised.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Message: appErr.Message})
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
