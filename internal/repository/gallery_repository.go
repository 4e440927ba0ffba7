package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-portal/internal/models"
)

const galleryColumns = `id, title, media_url, media_type, description, created_at`

// GalleryRepository handles gallery item persistence.
type GalleryRepository struct {
	db *sqlx.DB
}

// NewGalleryRepository constructs the repository.
func NewGalleryRepository(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// List returns gallery items oldest first.
func (r *GalleryRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items ORDER BY created_at ASC`
	items := make([]models.GalleryItem, 0)
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	return items, nil
}

// FindByID retrieves one gallery item.
func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items WHERE id = $1`
	var item models.GalleryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find gallery item: %w", err)
	}
	return &item, nil
}

// Create stores a gallery item.
func (r *GalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO gallery_items (id, title, media_url, media_type, description, created_at)
	VALUES (:id, :title, :media_url, :media_type, :description, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create gallery item: %w", err)
	}
	return nil
}

// Delete removes a gallery item. It returns sql.ErrNoRows when nothing matched.
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	return requireAffected(res)
}

// CountByMediaURL reports how many items reference the given media URL.
func (r *GalleryRepository) CountByMediaURL(ctx context.Context, mediaURL string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM gallery_items WHERE media_url = $1`, mediaURL); err != nil {
		return 0, fmt.Errorf("count gallery media references: %w", err)
	}
	return count, nil
}
