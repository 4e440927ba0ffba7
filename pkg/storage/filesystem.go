package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage persists uploaded media on disk under a base directory and
// knows the public URL prefix the directory is served from.
type LocalStorage struct {
	baseDir    string
	publicPath string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, publicPath string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, publicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

// SaveStream copies from reader into a new file. The write is complete when it returns.
func (s *LocalStorage) SaveStream(filename string, r io.Reader) (string, error) {
	target, err := s.resolve(filename)
	if err != nil {
		return "", err
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close() //nolint:errcheck
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return filename, nil
}

// Open returns a read-only handle for the stored file.
func (s *LocalStorage) Open(filename string) (*os.File, error) {
	target, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(filename string) error {
	target, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// URL returns the public path a stored file is served under.
func (s *LocalStorage) URL(filename string) string {
	return path.Join(s.publicPath, filename)
}

// FilenameFromURL maps a public media URL back to a stored filename.
// It reports false for URLs that do not point into this storage.
func (s *LocalStorage) FilenameFromURL(mediaURL string) (string, bool) {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(mediaURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(mediaURL, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// Dir exposes the base directory for static serving.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// PublicPath exposes the URL prefix for static serving.
func (s *LocalStorage) PublicPath() string {
	return s.publicPath
}

func (s *LocalStorage) resolve(filename string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + filename))
	if clean == "/" || clean == "." || clean != filename {
		return "", fmt.Errorf("invalid upload filename %q", filename)
	}
	return filepath.Join(s.baseDir, clean), nil
}
