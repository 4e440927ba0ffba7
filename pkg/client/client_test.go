package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "290829" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "classroom_session", Value: "admin", Path: "/"})
		_, _ = io.WriteString(w, `{"success":true,"isAdmin":true}`)
	})
	mux.HandleFunc("/api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("classroom_session")
		_ = json.NewEncoder(w).Encode(models.AuthStatus{IsAdmin: err == nil})
	})
	mux.HandleFunc("/api/students", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Invalid student data"}`)
			return
		}
		_, _ = io.WriteString(w, `[{"id":"s1","name":"Ana","seatNumber":5}]`)
	})
	mux.HandleFunc("/api/gallery/upload", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		raw, _ := io.ReadAll(file)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.GalleryItem{
			ID:        "g1",
			Title:     r.FormValue("title"),
			MediaURL:  "/uploads/" + header.Filename + "?" + string(raw),
			MediaType: models.MediaTypeFromMIME(header.Header.Get("Content-Type")),
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSessionCookie(t *testing.T) {
	srv := newFakeAPI(t)
	c, err := New(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsAdmin)

	_, err = c.Login(ctx, "Riikyy", "nope")
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.EqualError(t, err, "401: Invalid credentials")

	res, err := c.Login(ctx, "Riikyy", "290829")
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)

	status, err = c.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsAdmin)
}

func TestClientDecodesErrorsAndLists(t *testing.T) {
	srv := newFakeAPI(t)
	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	ctx := context.Background()

	students, err := c.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, 5, students[0].SeatNumber)

	_, err = c.CreateStudent(ctx, dto.CreateStudentRequest{Name: "Budi", SeatNumber: 5})
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Contains(t, err.Error(), "Invalid student data")

	_, err = c.Slides(ctx)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestClientUpload(t *testing.T) {
	srv := newFakeAPI(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	item, err := c.UploadGalleryItem(context.Background(), dto.UploadGalleryItemRequest{Title: "Trip"}, "clip.mp4", "video/mp4", strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "Trip", item.Title)
	assert.Equal(t, models.MediaTypeVideo, item.MediaType)
	assert.Equal(t, "/uploads/clip.mp4?abc", item.MediaURL)
}
