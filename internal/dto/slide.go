package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/datatypes"

	"github.com/noah-isme/classroom-portal/internal/models"
)

// FlexBool accepts both JSON booleans and the legacy "true"/"false" strings.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", s)
		}
		*b = FlexBool(v)
		return nil
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

// CreateSlideRequest is the insertion schema for slides.
type CreateSlideRequest struct {
	Title    string          `json:"title" validate:"required,max=200"`
	Type     string          `json:"type" validate:"required,oneof=classroom gallery custom"`
	Content  json.RawMessage `json:"content"`
	Order    *int            `json:"order" validate:"required"`
	IsActive *FlexBool       `json:"isActive"`
}

// Slide converts the request into a slide, defaulting isActive to true.
func (r CreateSlideRequest) Slide() *models.Slide {
	active := true
	if r.IsActive != nil {
		active = bool(*r.IsActive)
	}
	slide := &models.Slide{
		Title:    r.Title,
		Type:     models.SlideType(r.Type),
		Content:  contentOrNil(r.Content),
		IsActive: active,
	}
	if r.Order != nil {
		slide.Order = *r.Order
	}
	return slide
}

// UpdateSlideRequest is the partial update schema for slides.
type UpdateSlideRequest struct {
	Title    *string         `json:"title" validate:"omitempty,min=1,max=200"`
	Type     *string         `json:"type" validate:"omitempty,oneof=classroom gallery custom"`
	Content  json.RawMessage `json:"content"`
	Order    *int            `json:"order"`
	IsActive *FlexBool       `json:"isActive"`
}

// Patch converts the request into a storage patch.
func (r UpdateSlideRequest) Patch() models.SlidePatch {
	patch := models.SlidePatch{
		Title:   r.Title,
		Content: contentOrNil(r.Content),
		Order:   r.Order,
	}
	if r.Type != nil {
		t := models.SlideType(*r.Type)
		patch.Type = &t
	}
	if r.IsActive != nil {
		v := bool(*r.IsActive)
		patch.IsActive = &v
	}
	return patch
}

func contentOrNil(raw json.RawMessage) datatypes.JSON {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return datatypes.JSON(raw)
}
