package models

import (
	"strings"
	"time"
)

// MediaType distinguishes how a gallery item is rendered.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaTypeFromMIME derives the media type from a MIME prefix.
func MediaTypeFromMIME(mime string) MediaType {
	if strings.HasPrefix(strings.ToLower(mime), "image/") {
		return MediaTypeImage
	}
	return MediaTypeVideo
}

// GalleryItem is one media asset shown in the gallery.
type GalleryItem struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	MediaURL    string    `db:"media_url" json:"mediaUrl"`
	MediaType   MediaType `db:"media_type" json:"mediaType"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
