package models

import (
	"time"

	"gorm.io/datatypes"
)

// SlideType classifies slide content.
type SlideType string

const (
	SlideTypeClassroom SlideType = "classroom"
	SlideTypeGallery   SlideType = "gallery"
	SlideTypeCustom    SlideType = "custom"
)

// Slide is an ordered content unit for a presentation view. Content is opaque JSON.
type Slide struct {
	ID        string         `db:"id" json:"id"`
	Title     string         `db:"title" json:"title"`
	Type      SlideType      `db:"type" json:"type"`
	Content   datatypes.JSON `db:"content" json:"content"`
	Order     int            `db:"order" json:"order"`
	IsActive  bool           `db:"is_active" json:"isActive"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// SlidePatch carries the fields of a partial slide update.
type SlidePatch struct {
	Title    *string
	Type     *SlideType
	Content  datatypes.JSON
	Order    *int
	IsActive *bool
}

// Empty reports whether the patch changes nothing.
func (p SlidePatch) Empty() bool {
	return p.Title == nil && p.Type == nil && p.Content == nil && p.Order == nil && p.IsActive == nil
}
