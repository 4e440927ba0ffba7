package classroom

import (
	"time"

	"github.com/noah-isme/classroom-portal/internal/models"
)

// GalleryCard is the render model for one gallery item.
type GalleryCard struct {
	Item      models.GalleryItem
	Deletable bool
}

// Tag returns the element used to render the media: "img" or "video".
func (c GalleryCard) Tag() string {
	if c.Item.MediaType == models.MediaTypeImage {
		return "img"
	}
	return "video"
}

// Caption returns the optional description, or empty.
func (c GalleryCard) Caption() string {
	if c.Item.Description == nil {
		return ""
	}
	return *c.Item.Description
}

// Date formats the creation date for display.
func (c GalleryCard) Date() string {
	return c.Item.CreatedAt.In(time.Local).Format("02/01/2006")
}

// GalleryGrid keeps items in server order. Delete controls are offered only to admins.
type GalleryGrid struct {
	Cards []GalleryCard
	Admin bool
}

// BuildGallery wraps the list as returned by the server.
func BuildGallery(items []models.GalleryItem, admin bool) GalleryGrid {
	cards := make([]GalleryCard, len(items))
	for i, item := range items {
		cards[i] = GalleryCard{Item: item, Deletable: admin}
	}
	return GalleryGrid{Cards: cards, Admin: admin}
}

// Empty reports whether there is nothing to show.
func (g GalleryGrid) Empty() bool {
	return len(g.Cards) == 0
}

// CanAdd reports whether the add-media control is shown.
func (g GalleryGrid) CanAdd() bool {
	return g.Admin
}
