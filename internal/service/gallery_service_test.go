package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/pkg/jobs"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

// 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type mockGalleryRepo struct {
	items     []models.GalleryItem
	createErr error
}

func (m *mockGalleryRepo) List(ctx context.Context) ([]models.GalleryItem, error) {
	return append([]models.GalleryItem(nil), m.items...), nil
}

func (m *mockGalleryRepo) FindByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockGalleryRepo) Create(ctx context.Context, item *models.GalleryItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	item.ID = filepath.Base(item.MediaURL)
	for _, existing := range m.items {
		if existing.ID == item.ID {
			item.ID += "-copy"
		}
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *mockGalleryRepo) CountByMediaURL(ctx context.Context, mediaURL string) (int, error) {
	count := 0
	for _, item := range m.items {
		if item.MediaURL == mediaURL {
			count++
		}
	}
	return count, nil
}

func (m *mockGalleryRepo) Delete(ctx context.Context, id string) error {
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type recordingQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func newGalleryServiceForTest(t *testing.T) (*GalleryService, *mockGalleryRepo, *storage.LocalStorage, *recordingQueue) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	repo := &mockGalleryRepo{}
	queue := &recordingQueue{}
	svc := NewGalleryService(repo, store, queue, nil, NewMetricsService(), nil, zap.NewNop(), GalleryServiceConfig{MaxFileSize: 1024})
	return svc, repo, store, queue
}

func storedFiles(t *testing.T, store *storage.LocalStorage) []string {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestGalleryUploadStoresImage(t *testing.T) {
	svc, repo, store, _ := newGalleryServiceForTest(t)

	item, err := svc.Upload(context.Background(), dto.UploadGalleryItemRequest{Title: "Pixel"}, GalleryUpload{
		Filename:    "pixel.png",
		Size:        int64(len(pngBytes)),
		ContentType: "image/png",
		Content:     bytes.NewReader(pngBytes),
	}, admin)
	require.NoError(t, err)

	assert.Equal(t, models.MediaTypeImage, item.MediaType)
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, item.MediaURL)
	assert.Nil(t, item.Description)
	require.Len(t, repo.items, 1)

	name, ok := store.FilenameFromURL(item.MediaURL)
	require.True(t, ok)
	stored, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)
}

func TestGalleryUploadSniffsGenericContentType(t *testing.T) {
	svc, _, _, _ := newGalleryServiceForTest(t)

	item, err := svc.Upload(context.Background(), dto.UploadGalleryItemRequest{Title: "Pixel"}, GalleryUpload{
		Filename:    "pixel.png",
		Size:        int64(len(pngBytes)),
		ContentType: "application/octet-stream",
		Content:     bytes.NewReader(pngBytes),
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, models.MediaTypeImage, item.MediaType)
}

func TestGalleryUploadRejections(t *testing.T) {
	cases := map[string]GalleryUpload{
		"executable extension": {Filename: "virus.exe", Size: 4, ContentType: "image/png", Content: bytes.NewReader([]byte("MZ.."))},
		"mime not allowed":     {Filename: "notes.png", Size: 4, ContentType: "text/plain", Content: bytes.NewReader([]byte("text"))},
		"sniffed as text":      {Filename: "notes.png", Size: 4, Content: bytes.NewReader([]byte("text"))},
		"too large":            {Filename: "big.png", Size: 2048, ContentType: "image/png", Content: bytes.NewReader(make([]byte, 2048))},
	}
	for name, upload := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, store, _ := newGalleryServiceForTest(t)
			_, err := svc.Upload(context.Background(), dto.UploadGalleryItemRequest{Title: "x"}, upload, admin)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
			assert.Empty(t, repo.items)
			assert.Empty(t, storedFiles(t, store))
		})
	}
}

func TestGalleryUploadRequiresTitleAndFile(t *testing.T) {
	svc, _, _, _ := newGalleryServiceForTest(t)

	_, err := svc.Upload(context.Background(), dto.UploadGalleryItemRequest{}, GalleryUpload{Filename: "a.png", Size: 1, Content: bytes.NewReader([]byte{1})}, admin)
	assert.Contains(t, err.Error(), "title is required")

	_, err = svc.Upload(context.Background(), dto.UploadGalleryItemRequest{Title: "a"}, GalleryUpload{}, admin)
	assert.Contains(t, err.Error(), "No file uploaded")

	_, err = svc.Upload(context.Background(), dto.UploadGalleryItemRequest{Title: "a"}, GalleryUpload{}, nil)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestGalleryUploadRemovesFileWhenInsertFails(t *testing.T) {
	svc, repo, store, _ := newGalleryServiceForTest(t)
	repo.createErr = errors.New("insert failed")

	_, err := svc.Upload(context.Background(), dto.UploadGalleryItemRequest{Title: "Pixel"}, GalleryUpload{
		Filename: "pixel.png", Size: int64(len(pngBytes)), ContentType: "image/png", Content: bytes.NewReader(pngBytes),
	}, admin)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.Empty(t, storedFiles(t, store))
}

func TestGalleryDeleteSchedulesFileRemoval(t *testing.T) {
	svc, repo, _, queue := newGalleryServiceForTest(t)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, dto.UploadGalleryItemRequest{Title: "Pixel"}, GalleryUpload{
		Filename: "pixel.png", Size: int64(len(pngBytes)), ContentType: "image/png", Content: bytes.NewReader(pngBytes),
	}, admin)
	require.NoError(t, err)
	linked, err := svc.Create(ctx, dto.CreateGalleryItemRequest{Title: "Clip", MediaURL: "https://example.com/v.mp4", MediaType: "video"}, admin)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, uploaded.ID, admin))
	require.NoError(t, svc.Delete(ctx, linked.ID, admin))
	assert.Empty(t, repo.items)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobTypeRemoveUpload, queue.jobs[0].Type)
	assert.Equal(t, filepath.Base(uploaded.MediaURL), queue.jobs[0].Payload)

	err = svc.Delete(ctx, uploaded.ID, admin)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestGalleryDeleteKeepsUploadStillReferenced(t *testing.T) {
	svc, repo, _, queue := newGalleryServiceForTest(t)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, dto.UploadGalleryItemRequest{Title: "Pixel"}, GalleryUpload{
		Filename: "pixel.png", Size: int64(len(pngBytes)), ContentType: "image/png", Content: bytes.NewReader(pngBytes),
	}, admin)
	require.NoError(t, err)
	shared, err := svc.Create(ctx, dto.CreateGalleryItemRequest{Title: "Again", MediaURL: uploaded.MediaURL, MediaType: "image"}, admin)
	require.NoError(t, err)
	require.NotEqual(t, uploaded.ID, shared.ID)

	require.NoError(t, svc.Delete(ctx, shared.ID, admin))
	assert.Empty(t, queue.jobs)
	require.Len(t, repo.items, 1)

	require.NoError(t, svc.Delete(ctx, uploaded.ID, admin))
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, filepath.Base(uploaded.MediaURL), queue.jobs[0].Payload)
}

func TestGalleryDeleteRemovesInlineWhenQueueUnavailable(t *testing.T) {
	svc, _, store, queue := newGalleryServiceForTest(t)
	queue.err = errors.New("queue full")
	ctx := context.Background()

	item, err := svc.Upload(ctx, dto.UploadGalleryItemRequest{Title: "Pixel"}, GalleryUpload{
		Filename: "pixel.png", Size: int64(len(pngBytes)), ContentType: "image/png", Content: bytes.NewReader(pngBytes),
	}, admin)
	require.NoError(t, err)
	require.Len(t, storedFiles(t, store), 1)

	require.NoError(t, svc.Delete(ctx, item.ID, admin))
	assert.Empty(t, storedFiles(t, store))
}

func TestGalleryCreateValidatesMediaType(t *testing.T) {
	svc, _, _, _ := newGalleryServiceForTest(t)
	_, err := svc.Create(context.Background(), dto.CreateGalleryItemRequest{Title: "x", MediaURL: "https://e.com/a", MediaType: "audio"}, admin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mediaType must be one of: image video")
}
