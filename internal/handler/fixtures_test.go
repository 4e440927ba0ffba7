package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/export"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

type memStudentRepo struct {
	mu       sync.Mutex
	students map[string]models.Student
}

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{students: map[string]models.Student{}}
}

func (r *memStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

func (r *memStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r *memStudentRepo) FindBySeat(ctx context.Context, seat int) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.SeatNumber == seat {
			found := s
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memStudentRepo) seatTakenLocked(seat int, except string) bool {
	for id, s := range r.students {
		if s.SeatNumber == seat && id != except {
			return true
		}
	}
	return false
}

func (r *memStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seatTakenLocked(student.SeatNumber, "") {
		return repository.ErrDuplicate
	}
	student.ID = uuid.NewString()
	student.CreatedAt = time.Now().UTC()
	student.UpdatedAt = student.CreatedAt
	r.students[student.ID] = *student
	return nil
}

func (r *memStudentRepo) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if patch.SeatNumber != nil {
		if r.seatTakenLocked(*patch.SeatNumber, id) {
			return nil, repository.ErrDuplicate
		}
		s.SeatNumber = *patch.SeatNumber
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.PhotoURL != nil {
		s.PhotoURL = patch.PhotoURL
	}
	if patch.Hobbies != nil {
		s.Hobbies = patch.Hobbies
	}
	s.UpdatedAt = time.Now().UTC()
	r.students[id] = s
	return &s, nil
}

func (r *memStudentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.students, id)
	return nil
}

type memGalleryRepo struct {
	mu    sync.Mutex
	items []models.GalleryItem
}

func (r *memGalleryRepo) List(ctx context.Context) ([]models.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.GalleryItem{}, r.items...), nil
}

func (r *memGalleryRepo) FindByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memGalleryRepo) Create(ctx context.Context, item *models.GalleryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	r.items = append(r.items, *item)
	return nil
}

func (r *memGalleryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memGalleryRepo) CountByMediaURL(ctx context.Context, mediaURL string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, item := range r.items {
		if item.MediaURL == mediaURL {
			count++
		}
	}
	return count, nil
}

type memSlideRepo struct {
	mu     sync.Mutex
	slides []models.Slide
}

func (r *memSlideRepo) List(ctx context.Context) ([]models.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]models.Slide{}, r.slides...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *memSlideRepo) FindByID(ctx context.Context, id string) (*models.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slides {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memSlideRepo) Create(ctx context.Context, slide *models.Slide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slide.ID = uuid.NewString()
	slide.CreatedAt = time.Now().UTC()
	r.slides = append(r.slides, *slide)
	return nil
}

func (r *memSlideRepo) Update(ctx context.Context, id string, patch models.SlidePatch) (*models.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.slides {
		s := &r.slides[i]
		if s.ID != id {
			continue
		}
		if patch.Title != nil {
			s.Title = *patch.Title
		}
		if patch.Type != nil {
			s.Type = *patch.Type
		}
		if patch.Content != nil {
			s.Content = patch.Content
		}
		if patch.Order != nil {
			s.Order = *patch.Order
		}
		if patch.IsActive != nil {
			s.IsActive = *patch.IsActive
		}
		updated := *s
		return &updated, nil
	}
	return nil, sql.ErrNoRows
}

func (r *memSlideRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.slides {
		if s.ID == id {
			r.slides = append(r.slides[:i], r.slides[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type testApp struct {
	server     *httptest.Server
	client     *http.Client
	uploadsDir string
	students   *memStudentRepo
	gallery    *memGalleryRepo
	slides     *memSlideRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:     config.EnvProduction,
		Session: config.SessionConfig{Name: "classroom_session", Secret: "test-secret", MaxAge: time.Hour},
		Admin:   config.AdminConfig{Username: "Riikyy", Password: "290829"},
		Uploads: config.UploadsConfig{Dir: t.TempDir(), PublicPath: "/uploads"},
		Metrics: config.MetricsConfig{Enabled: true},
	}
	logger := zap.NewNop()
	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	files, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPath)
	require.NoError(t, err)

	app := &testApp{
		uploadsDir: cfg.Uploads.Dir,
		students:   newMemStudentRepo(),
		gallery:    &memGalleryRepo{},
		slides:     &memSlideRepo{},
	}

	studentSvc := service.NewStudentService(app.students, nil, validate, logger)
	gallerySvc := service.NewGalleryService(app.gallery, files, nil, nil, metrics, validate, logger, service.GalleryServiceConfig{})
	slideSvc := service.NewSlideService(app.slides, nil, validate, logger)
	authSvc := service.NewAuthService(service.AdminCredentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password}, metrics, logger)
	exportSvc := service.NewExportService(studentSvc, export.NewCSVExporter(), export.NewPDFExporter(), logger)

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	router := NewRouter(RouterDeps{
		Config:       cfg,
		Logger:       logger,
		SessionStore: store,
		Metrics:      metrics,
		Auth:         NewAuthHandler(authSvc),
		Students:     NewStudentHandler(studentSvc, exportSvc),
		Gallery:      NewGalleryHandler(gallerySvc),
		Slides:       NewSlideHandler(slideSvc),
		Ops:          NewMetricsHandler(metrics, nil),
	})

	app.server = httptest.NewServer(router)
	t.Cleanup(app.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	app.client = &http.Client{Jar: jar}
	return app
}
