package dto

// CreateGalleryItemRequest is the URL-mode insertion schema.
type CreateGalleryItemRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	MediaURL    string  `json:"mediaUrl" validate:"required,max=2048"`
	MediaType   string  `json:"mediaType" validate:"required,oneof=image video"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UploadGalleryItemRequest holds the text fields sent alongside an uploaded file.
type UploadGalleryItemRequest struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description" validate:"omitempty,max=2000"`
}
