package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "uploads/")
	require.NoError(t, err)

	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	name, err := store.SaveStream("a1.png", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "a1.png", name)
	assert.Equal(t, "/uploads/a1.png", store.URL(name))

	file, err := store.Open(name)
	require.NoError(t, err)
	got, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, payload, got)

	require.NoError(t, store.Delete(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(name))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.SaveStream("../escape.png", bytes.NewReader([]byte("x")))
	assert.Error(t, err)
	assert.Error(t, store.Delete("nested/file.png"))
}

func TestLocalStorageRefusesOverwrite(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.SaveStream("dup.gif", bytes.NewReader([]byte("one")))
	require.NoError(t, err)
	_, err = store.SaveStream("dup.gif", bytes.NewReader([]byte("two")))
	assert.Error(t, err)
}

func TestFilenameFromURL(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	name, ok := store.FilenameFromURL("/uploads/abc.mp4")
	assert.True(t, ok)
	assert.Equal(t, "abc.mp4", name)

	_, ok = store.FilenameFromURL("https://cdn.example/abc.mp4")
	assert.False(t, ok)
	_, ok = store.FilenameFromURL("/uploads/")
	assert.False(t, ok)
}
