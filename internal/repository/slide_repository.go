package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-portal/internal/models"
)

// content is never NULL on the way out so datatypes.JSON can scan it.
const slideColumns = `id, title, type, COALESCE(content, 'null'::jsonb) AS content, "order", is_active, created_at`

// SlideRepository persists slides.
type SlideRepository struct {
	db *sqlx.DB
}

// NewSlideRepository constructs a SlideRepository.
func NewSlideRepository(db *sqlx.DB) *SlideRepository {
	return &SlideRepository{db: db}
}

// List returns slides by display order.
func (r *SlideRepository) List(ctx context.Context) ([]models.Slide, error) {
	query := `SELECT ` + slideColumns + ` FROM slides ORDER BY "order" ASC, created_at ASC`
	slides := make([]models.Slide, 0)
	if err := r.db.SelectContext(ctx, &slides, query); err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	return slides, nil
}

// FindByID fetches one slide.
func (r *SlideRepository) FindByID(ctx context.Context, id string) (*models.Slide, error) {
	query := `SELECT ` + slideColumns + ` FROM slides WHERE id = $1`
	var slide models.Slide
	if err := r.db.GetContext(ctx, &slide, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find slide: %w", err)
	}
	return &slide, nil
}

// Create inserts a slide.
func (r *SlideRepository) Create(ctx context.Context, slide *models.Slide) error {
	if slide.ID == "" {
		slide.ID = uuid.NewString()
	}
	slide.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO slides (id, title, type, content, "order", is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query, slide.ID, slide.Title, slide.Type, slide.Content, slide.Order, slide.IsActive, slide.CreatedAt); err != nil {
		return fmt.Errorf("create slide: %w", err)
	}
	if slide.Content == nil {
		slide.Content = []byte("null")
	}
	return nil
}

// Update applies the non-nil fields of patch. An empty patch returns the current row.
func (r *SlideRepository) Update(ctx context.Context, id string, patch models.SlidePatch) (*models.Slide, error) {
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Type != nil {
		set("type", *patch.Type)
	}
	if patch.Content != nil {
		set("content", patch.Content)
	}
	if patch.Order != nil {
		set(`"order"`, *patch.Order)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE slides SET %s WHERE id = $%d RETURNING %s`, strings.Join(sets, ", "), len(args), slideColumns)
	var slide models.Slide
	if err := r.db.GetContext(ctx, &slide, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update slide: %w", err)
	}
	return &slide, nil
}

// Delete removes a slide. It returns sql.ErrNoRows when nothing matched.
func (r *SlideRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slide: %w", err)
	}
	return requireAffected(res)
}
