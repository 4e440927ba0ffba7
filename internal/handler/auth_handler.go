package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/internal/session"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Enter admin mode
// @Description Compare the credentials with the configured admin pair and flag the session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} models.LoginResult
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindStrictJSON(c, &req, "Invalid login payload") {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := session.SetAdmin(c); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "Failed to create session"))
		return
	}

	response.OK(c, res)
}

// Logout godoc
// @Summary Leave admin mode
// @Description Destroy the current session
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.SuccessBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "Failed to logout"))
		return
	}
	response.Success(c)
}

// Status godoc
// @Summary Session status
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.AuthStatus
// @Router /api/auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	response.OK(c, h.service.Status(principalFromContext(c)))
}
