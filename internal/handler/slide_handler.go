package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

// SlideHandler exposes slide endpoints.
type SlideHandler struct {
	slides *service.SlideService
}

// NewSlideHandler constructs SlideHandler.
func NewSlideHandler(slides *service.SlideService) *SlideHandler {
	return &SlideHandler{slides: slides}
}

// List godoc
// @Summary List slides
// @Tags Slides
// @Produce json
// @Success 200 {array} models.Slide
// @Router /api/slides [get]
func (h *SlideHandler) List(c *gin.Context) {
	slides, err := h.slides.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slides)
}

// Get godoc
// @Summary Get slide
// @Tags Slides
// @Produce json
// @Param id path string true "Slide ID"
// @Success 200 {object} models.Slide
// @Failure 404 {object} response.ErrorBody
// @Router /api/slides/{id} [get]
func (h *SlideHandler) Get(c *gin.Context) {
	slide, err := h.slides.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slide)
}

// Create godoc
// @Summary Create slide
// @Tags Slides
// @Accept json
// @Produce json
// @Param payload body dto.CreateSlideRequest true "Slide payload"
// @Success 201 {object} models.Slide
// @Failure 400 {object} response.ErrorBody
// @Router /api/slides [post]
func (h *SlideHandler) Create(c *gin.Context) {
	var req dto.CreateSlideRequest
	if !bindStrictJSON(c, &req, "Invalid slide data") {
		return
	}
	slide, err := h.slides.Create(c.Request.Context(), req, principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slide)
}

// Update godoc
// @Summary Update slide
// @Tags Slides
// @Accept json
// @Produce json
// @Param id path string true "Slide ID"
// @Param payload body dto.UpdateSlideRequest true "Slide payload"
// @Success 200 {object} models.Slide
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/slides/{id} [put]
func (h *SlideHandler) Update(c *gin.Context) {
	var req dto.UpdateSlideRequest
	if !bindStrictJSON(c, &req, "Invalid slide data") {
		return
	}
	slide, err := h.slides.Update(c.Request.Context(), c.Param("id"), req, principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slide)
}

// Delete godoc
// @Summary Delete slide
// @Tags Slides
// @Param id path string true "Slide ID"
// @Success 200 {object} response.SuccessBody
// @Failure 403 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/slides/{id} [delete]
func (h *SlideHandler) Delete(c *gin.Context) {
	if err := h.slides.Delete(c.Request.Context(), c.Param("id"), principalFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
