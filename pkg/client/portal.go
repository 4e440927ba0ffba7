package client

import (
	"context"
	"io"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
)

// Portal pairs a Client with a QueryCache so reads are cached and writes
// invalidate the keys they affect.
type Portal struct {
	API    *Client
	Cache  *QueryCache
	Notify Notifier
}

// NewPortal wires a portal. notify may be nil.
func NewPortal(api *Client, cache *QueryCache, notify Notifier) *Portal {
	return &Portal{API: api, Cache: cache, Notify: notify}
}

// Students reads the cached student list.
func (p *Portal) Students(ctx context.Context) ([]models.Student, Snapshot, error) {
	return Query(ctx, p.Cache, KeyStudents, p.API.Students)
}

// Student reads one cached student.
func (p *Portal) Student(ctx context.Context, id string) (*models.Student, Snapshot, error) {
	return Query(ctx, p.Cache, KeyStudent(id), func(ctx context.Context) (*models.Student, error) {
		return p.API.Student(ctx, id)
	})
}

// Gallery reads the cached gallery.
func (p *Portal) Gallery(ctx context.Context) ([]models.GalleryItem, Snapshot, error) {
	return Query(ctx, p.Cache, KeyGallery, p.API.Gallery)
}

// Slides reads the cached slide list.
func (p *Portal) Slides(ctx context.Context) ([]models.Slide, Snapshot, error) {
	return Query(ctx, p.Cache, KeySlides, p.API.Slides)
}

// AuthStatus reads the cached session status.
func (p *Portal) AuthStatus(ctx context.Context) (models.AuthStatus, Snapshot, error) {
	return Query(ctx, p.Cache, KeyAuthStatus, p.API.Status)
}

// Login enters admin mode.
func (p *Portal) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	return Mutate(ctx, p.Cache, p.Notify, "Login failed", []string{KeyAuthStatus}, func(ctx context.Context) (*models.LoginResult, error) {
		return p.API.Login(ctx, username, password)
	})
}

// Logout leaves admin mode.
func (p *Portal) Logout(ctx context.Context) error {
	_, err := Mutate(ctx, p.Cache, p.Notify, "Logout failed", []string{KeyAuthStatus}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.API.Logout(ctx)
	})
	return err
}

// CreateStudent adds a student.
func (p *Portal) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	return Mutate(ctx, p.Cache, p.Notify, "Failed to add student", []string{KeyStudents}, func(ctx context.Context) (*models.Student, error) {
		return p.API.CreateStudent(ctx, req)
	})
}

// UpdateStudent applies a partial update.
func (p *Portal) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	return Mutate(ctx, p.Cache, p.Notify, "Failed to update student", []string{KeyStudents}, func(ctx context.Context) (*models.Student, error) {
		return p.API.UpdateStudent(ctx, id, req)
	})
}

// DeleteStudent removes a student.
func (p *Portal) DeleteStudent(ctx context.Context, id string) error {
	_, err := Mutate(ctx, p.Cache, p.Notify, "Failed to delete student", []string{KeyStudents}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.API.DeleteStudent(ctx, id)
	})
	return err
}

// CreateGalleryItem adds an item by URL.
func (p *Portal) CreateGalleryItem(ctx context.Context, req dto.CreateGalleryItemRequest) (*models.GalleryItem, error) {
	return Mutate(ctx, p.Cache, p.Notify, "Failed to add gallery item", []string{KeyGallery}, func(ctx context.Context) (*models.GalleryItem, error) {
		return p.API.CreateGalleryItem(ctx, req)
	})
}

// UploadGalleryItem uploads a file.
func (p *Portal) UploadGalleryItem(ctx context.Context, meta dto.UploadGalleryItemRequest, filename, contentType string, content io.Reader) (*models.GalleryItem, error) {
	return Mutate(ctx, p.Cache, p.Notify, "Upload failed", []string{KeyGallery}, func(ctx context.Context) (*models.GalleryItem, error) {
		return p.API.UploadGalleryItem(ctx, meta, filename, contentType, content)
	})
}

// DeleteGalleryItem removes a gallery item.
func (p *Portal) DeleteGalleryItem(ctx context.Context, id string) error {
	_, err := Mutate(ctx, p.Cache, p.Notify, "Failed to delete gallery item", []string{KeyGallery}, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.API.DeleteGalleryItem(ctx, id)
	})
	return err
}
