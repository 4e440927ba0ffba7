package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

type slideRepository interface {
	List(ctx context.Context) ([]models.Slide, error)
	FindByID(ctx context.Context, id string) (*models.Slide, error)
	Create(ctx context.Context, slide *models.Slide) error
	Update(ctx context.Context, id string, patch models.SlidePatch) (*models.Slide, error)
	Delete(ctx context.Context, id string) error
}

// SlideService manages presentation slides.
type SlideService struct {
	repo      slideRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSlideService constructs a SlideService.
func NewSlideService(repo slideRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SlideService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlideService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns slides by display order.
func (s *SlideService) List(ctx context.Context) ([]models.Slide, error) {
	slides, err := cachedList(ctx, s.cache, CacheKeySlides, s.repo.List)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch slides")
	}
	return slides, nil
}

// Get returns one slide.
func (s *SlideService) Get(ctx context.Context, id string) (*models.Slide, error) {
	slide, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Slide not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch slide")
	}
	return slide, nil
}

// Create inserts a slide.
func (s *SlideService) Create(ctx context.Context, req dto.CreateSlideRequest, actor *models.Principal) (*models.Slide, error) {
	if !actor.Admin() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Invalid slide data")
	}
	slide := req.Slide()
	if err := s.repo.Create(ctx, slide); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to create slide")
	}
	s.cache.Invalidate(ctx, CacheKeySlides)
	return slide, nil
}

// Update applies a partial update. An unknown id is a store failure.
func (s *SlideService) Update(ctx context.Context, id string, req dto.UpdateSlideRequest, actor *models.Principal) (*models.Slide, error) {
	if !actor.Admin() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Invalid slide data")
	}
	slide, err := s.repo.Update(ctx, id, req.Patch())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to update slide")
	}
	s.cache.Invalidate(ctx, CacheKeySlides)
	return slide, nil
}

// Delete removes a slide.
func (s *SlideService) Delete(ctx context.Context, id string, actor *models.Principal) error {
	if !actor.Admin() {
		return appErrors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete slide")
	}
	s.cache.Invalidate(ctx, CacheKeySlides)
	return nil
}
