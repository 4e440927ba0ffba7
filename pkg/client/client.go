// Package client is the Go client for the classroom portal REST API together
// with a keyed query cache that mirrors what the web front end keeps in memory.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
)

// APIError is a non-2xx response decoded from the {message} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Client calls the REST API. Its cookie jar carries the admin session.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A jar is added when missing.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithJar sets the cookie jar holding the session.
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.http.Jar = jar
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New builds a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// Login enters admin mode for this client's session.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	var out models.LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout destroys the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Status reports whether the session is admin.
func (c *Client) Status(ctx context.Context) (models.AuthStatus, error) {
	var out models.AuthStatus
	err := c.doJSON(ctx, http.MethodGet, KeyAuthStatus, nil, &out)
	return out, err
}

// Students lists students ordered by seat.
func (c *Client) Students(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	err := c.doJSON(ctx, http.MethodGet, KeyStudents, nil, &out)
	return out, err
}

// Student fetches one student.
func (c *Client) Student(ctx context.Context, id string) (*models.Student, error) {
	var out models.Student
	if err := c.doJSON(ctx, http.MethodGet, KeyStudent(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentBySeat fetches the occupant of a seat.
func (c *Client) StudentBySeat(ctx context.Context, seat int) (*models.Student, error) {
	var out models.Student
	if err := c.doJSON(ctx, http.MethodGet, "/api/students/seat/"+strconv.Itoa(seat), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStudent places a student on a seat.
func (c *Client) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	var out models.Student
	if err := c.doJSON(ctx, http.MethodPost, KeyStudents, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudent sends a partial update.
func (c *Client) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	var out models.Student
	if err := c.doJSON(ctx, http.MethodPut, KeyStudent(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStudent frees the student's seat.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, KeyStudent(id), nil, nil)
}

// ExportSeating downloads the seating chart in the given format.
func (c *Client) ExportSeating(ctx context.Context, format string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/students/export?format="+url.QueryEscape(format), nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Gallery lists gallery items in creation order.
func (c *Client) Gallery(ctx context.Context) ([]models.GalleryItem, error) {
	var out []models.GalleryItem
	err := c.doJSON(ctx, http.MethodGet, KeyGallery, nil, &out)
	return out, err
}

// CreateGalleryItem adds an item that points at an external URL.
func (c *Client) CreateGalleryItem(ctx context.Context, req dto.CreateGalleryItemRequest) (*models.GalleryItem, error) {
	var out models.GalleryItem
	if err := c.doJSON(ctx, http.MethodPost, KeyGallery, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadGalleryItem sends a file as multipart form data.
func (c *Client) UploadGalleryItem(ctx context.Context, meta dto.UploadGalleryItemRequest, filename, contentType string, content io.Reader) (*models.GalleryItem, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("title", meta.Title); err != nil {
		return nil, err
	}
	if meta.Description != "" {
		if err := w.WriteField("description", meta.Description); err != nil {
			return nil, err
		}
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, KeyGallery+"/upload", &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out models.GalleryItem
	if err := c.decode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGalleryItem removes a gallery item.
func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, KeyGallery+"/"+url.PathEscape(id), nil, nil)
}

// Slides lists slides.
func (c *Client) Slides(ctx context.Context) ([]models.Slide, error) {
	var out []models.Slide
	err := c.doJSON(ctx, http.MethodGet, KeySlides, nil, &out)
	return out, err
}

// Slide fetches one slide.
func (c *Client) Slide(ctx context.Context, id string) (*models.Slide, error) {
	var out models.Slide
	if err := c.doJSON(ctx, http.MethodGet, KeySlides+"/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSlide adds a slide.
func (c *Client) CreateSlide(ctx context.Context, req dto.CreateSlideRequest) (*models.Slide, error) {
	var out models.Slide
	if err := c.doJSON(ctx, http.MethodPost, KeySlides, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSlide sends a partial slide update.
func (c *Client) UpdateSlide(ctx context.Context, id string, req dto.UpdateSlideRequest) (*models.Slide, error) {
	var out models.Slide
	if err := c.doJSON(ctx, http.MethodPut, KeySlides+"/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSlide removes a slide.
func (c *Client) DeleteSlide(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, KeySlides+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, reader, contentType)
	if err != nil {
		return err
	}
	return c.decode(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) decode(req *http.Request, out interface{}) error {
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// send performs the request and converts non-2xx responses into *APIError.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return nil, apiErr
}
