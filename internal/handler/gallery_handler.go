package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/service"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

// uploadField is the multipart field carrying the media file.
const uploadField = "file"

// uploadFormOverhead leaves room for the text fields and part headers.
const uploadFormOverhead = 1 << 20

// GalleryHandler exposes gallery endpoints.
type GalleryHandler struct {
	gallery *service.GalleryService
}

// NewGalleryHandler constructs GalleryHandler.
func NewGalleryHandler(gallery *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List godoc
// @Summary List gallery items
// @Description Items in creation order
// @Tags Gallery
// @Produce json
// @Success 200 {array} models.GalleryItem
// @Failure 500 {object} response.ErrorBody
// @Router /api/gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.gallery.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Create godoc
// @Summary Add a gallery item by URL
// @Tags Gallery
// @Accept json
// @Produce json
// @Param payload body dto.CreateGalleryItemRequest true "Gallery item"
// @Success 201 {object} models.GalleryItem
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /api/gallery [post]
func (h *GalleryHandler) Create(c *gin.Context) {
	var req dto.CreateGalleryItemRequest
	if !bindStrictJSON(c, &req, "Invalid gallery item data") {
		return
	}
	item, err := h.gallery.Create(c.Request.Context(), req, principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Upload godoc
// @Summary Upload an image or video
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 201 {object} models.GalleryItem
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/gallery/upload [post]
func (h *GalleryHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.gallery.MaxUploadSize()+uploadFormOverhead)

	var meta dto.UploadGalleryItemRequest
	if err := c.ShouldBindWith(&meta, binding.FormMultipart); err != nil {
		if isBodyTooLarge(err) {
			response.Error(c, h.gallery.RejectOversized())
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid upload"))
		return
	}

	var upload service.GalleryUpload
	header, err := c.FormFile(uploadField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case isBodyTooLarge(err):
		response.Error(c, h.gallery.RejectOversized())
		return
	case err != nil:
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid upload"))
		return
	default:
		file, err := header.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "Failed to upload media"))
			return
		}
		defer file.Close()
		upload = service.GalleryUpload{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		}
	}

	item, err := h.gallery.Upload(c.Request.Context(), meta, upload, principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// Delete godoc
// @Summary Delete a gallery item
// @Description Uploaded files are removed in the background
// @Tags Gallery
// @Produce json
// @Param id path string true "Gallery item ID"
// @Success 200 {object} response.SuccessBody
// @Failure 403 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.gallery.Delete(c.Request.Context(), c.Param("id"), principalFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c)
}
