package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/jobs"
)

type galleryRepository interface {
	List(ctx context.Context) ([]models.GalleryItem, error)
	FindByID(ctx context.Context, id string) (*models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id string) error
	CountByMediaURL(ctx context.Context, mediaURL string) (int, error)
}

type mediaStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
	URL(filename string) string
	FilenameFromURL(mediaURL string) (string, bool)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// GalleryUpload carries one uploaded file part.
type GalleryUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.ReadSeeker
}

// GalleryServiceConfig holds upload validation parameters.
type GalleryServiceConfig struct {
	MaxFileSize       int64
	AllowedExtensions []string
	AllowedMIMEs      []string
}

// GalleryService manages gallery items and the uploaded media behind them.
type GalleryService struct {
	repo      galleryRepository
	storage   mediaStorage
	cleanup   jobEnqueuer
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       GalleryServiceConfig
	extSet    map[string]struct{}
	mimeSet   map[string]struct{}
}

// NewGalleryService constructs the service with defaults.
func NewGalleryService(repo galleryRepository, storage mediaStorage, cleanup jobEnqueuer, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg GalleryServiceConfig) *GalleryService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 * 1024 * 1024
	}
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = []string{".jpeg", ".jpg", ".png", ".gif", ".webp", ".mp4", ".webm", ".ogg"}
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "video/mp4", "video/webm", "video/ogg"}
	}
	extSet := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extSet[ext] = struct{}{}
	}
	mimeSet := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mt := range cfg.AllowedMIMEs {
		mimeSet[strings.ToLower(strings.TrimSpace(mt))] = struct{}{}
	}
	return &GalleryService{
		repo:      repo,
		storage:   storage,
		cleanup:   cleanup,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		extSet:    extSet,
		mimeSet:   mimeSet,
	}
}

// List returns gallery items in creation order.
func (s *GalleryService) List(ctx context.Context) ([]models.GalleryItem, error) {
	items, err := cachedList(ctx, s.cache, CacheKeyGallery, s.repo.List)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch gallery items")
	}
	return items, nil
}

// Create stores an item that references media by URL.
func (s *GalleryService) Create(ctx context.Context, req dto.CreateGalleryItemRequest, actor *models.Principal) (*models.GalleryItem, error) {
	if !actor.Admin() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "Invalid gallery item data")
	}
	item := &models.GalleryItem{
		Title:       req.Title,
		MediaURL:    req.MediaURL,
		MediaType:   models.MediaType(req.MediaType),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to create gallery item")
	}
	s.cache.Invalidate(ctx, CacheKeyGallery)
	return item, nil
}

// MaxUploadSize is the largest accepted media file in bytes.
func (s *GalleryService) MaxUploadSize() int64 {
	return s.cfg.MaxFileSize
}

// RejectOversized records a rejected upload and returns the size-limit error.
func (s *GalleryService) RejectOversized() error {
	s.metrics.RecordUpload("rejected", "")
	return appErrors.Clone(appErrors.ErrUploadRejected, fmt.Sprintf("File exceeds the %d MB limit", s.cfg.MaxFileSize/(1024*1024)))
}

// Upload validates and stores the file, then records the gallery item.
// Rejected files never reach storage; a failed insert removes the stored file.
func (s *GalleryService) Upload(ctx context.Context, meta dto.UploadGalleryItemRequest, upload GalleryUpload, actor *models.Principal) (*models.GalleryItem, error) {
	if !actor.Admin() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(meta); err != nil {
		return nil, validationError(err, "Invalid gallery item data")
	}
	if upload.Content == nil || upload.Size <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "No file uploaded")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return nil, s.RejectOversized()
	}
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, ok := s.extSet[ext]; !ok {
		s.metrics.RecordUpload("rejected", "")
		return nil, appErrors.ErrUploadRejected
	}
	contentType, err := s.detectMIME(upload)
	if err != nil {
		return nil, err
	}
	if _, ok := s.mimeSet[contentType]; !ok {
		s.metrics.RecordUpload("rejected", "")
		return nil, appErrors.ErrUploadRejected
	}
	mediaType := models.MediaTypeFromMIME(contentType)

	name, err := s.storage.SaveStream(uuid.NewString()+ext, upload.Content)
	if err != nil {
		s.metrics.RecordUpload("failed", string(mediaType))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to upload media")
	}
	item := &models.GalleryItem{
		Title:       meta.Title,
		MediaURL:    s.storage.URL(name),
		MediaType:   mediaType,
		Description: optionalString(meta.Description),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if delErr := s.storage.Delete(name); delErr != nil {
			s.logger.Error("failed to remove orphaned upload", zap.String("file", name), zap.Error(delErr))
		}
		s.metrics.RecordUpload("failed", string(mediaType))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to upload media")
	}
	s.cache.Invalidate(ctx, CacheKeyGallery)
	s.metrics.RecordUpload("stored", string(mediaType))
	s.logger.Info("gallery media uploaded", zap.String("item_id", item.ID), zap.String("file", name), zap.String("mime", contentType), zap.Int64("size", upload.Size))
	return item, nil
}

// Delete removes the item and schedules removal of its uploaded file once no
// other item points at it. An unknown id is a store failure.
func (s *GalleryService) Delete(ctx context.Context, id string, actor *models.Principal) error {
	if !actor.Admin() {
		return appErrors.ErrForbidden
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete gallery item")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to delete gallery item")
	}
	s.cache.Invalidate(ctx, CacheKeyGallery)

	name, ok := s.storage.FilenameFromURL(item.MediaURL)
	if !ok {
		return nil
	}
	refs, err := s.repo.CountByMediaURL(ctx, item.MediaURL)
	if err != nil {
		s.logger.Warn("keeping upload, reference check failed", zap.String("file", name), zap.Error(err))
		return nil
	}
	if refs > 0 {
		s.logger.Debug("keeping shared upload", zap.String("file", name), zap.Int("references", refs))
		return nil
	}
	s.scheduleRemoval(name)
	return nil
}

func (s *GalleryService) scheduleRemoval(name string) {
	if s.cleanup != nil {
		err := s.cleanup.Enqueue(jobs.Job{ID: uuid.NewString(), Type: JobTypeRemoveUpload, Payload: name})
		if err == nil {
			return
		}
		s.logger.Warn("cleanup queue unavailable, removing inline", zap.String("file", name), zap.Error(err))
	}
	if err := s.storage.Delete(name); err != nil {
		s.logger.Error("failed to remove upload", zap.String("file", name), zap.Error(err))
	}
}

// detectMIME trusts the part's Content-Type unless it is missing or generic,
// in which case the leading bytes are sniffed.
func (s *GalleryService) detectMIME(upload GalleryUpload) (string, error) {
	contentType := normalizeMIME(upload.ContentType)
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType, nil
	}
	detected, err := mimetype.DetectReader(upload.Content)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect file")
	}
	if _, err := upload.Content.Seek(0, io.SeekStart); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset upload stream")
	}
	return normalizeMIME(detected.String()), nil
}

func normalizeMIME(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(raw); err == nil {
		return strings.ToLower(parsed)
	}
	return strings.ToLower(strings.TrimSpace(strings.SplitN(raw, ";", 2)[0]))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
