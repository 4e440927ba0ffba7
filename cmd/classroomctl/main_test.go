package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/pkg/client"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "classroom_session", Value: "abc", Path: "/"})
		_, _ = io.WriteString(w, `{"success":true,"isAdmin":true}`)
	})
	mux.HandleFunc("/api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("classroom_session")
		if err == nil {
			_, _ = io.WriteString(w, `{"isAdmin":true}`)
			return
		}
		_, _ = io.WriteString(w, `{"isAdmin":false}`)
	})
	mux.HandleFunc("/api/students", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"s1","name":"Ana Lestari","seatNumber":5}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionSurvivesBetweenRuns(t *testing.T) {
	srv := fakeAPI(t)
	jarPath := filepath.Join(t.TempDir(), "session")

	require.NoError(t, execute(srv.URL, jarPath, time.Second, "login", []string{"-u", "Riikyy", "-p", "290829"}))

	jar, err := loadJar(jarPath, srv.URL)
	require.NoError(t, err)
	api, err := client.New(srv.URL, client.WithJar(jar))
	require.NoError(t, err)
	status, err := api.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.IsAdmin)
}

func TestSeatsRendersLayout(t *testing.T) {
	srv := fakeAPI(t)
	api, err := client.New(srv.URL)
	require.NoError(t, err)
	var out bytes.Buffer
	a := &app{portal: client.NewPortal(api, client.NewQueryCache(0, zap.NewNop()), nil), out: &out}

	require.NoError(t, runSeats(context.Background(), a, nil))
	assert.Contains(t, out.String(), "5:Ana")
	assert.Contains(t, out.String(), "[1]")
	assert.Contains(t, out.String(), "Total: 33 seats, 1 occupied")
}

func TestUnknownCommand(t *testing.T) {
	err := execute("http://localhost:1", filepath.Join(t.TempDir(), "s"), time.Second, "dance", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown command"))
}

func TestAddStudentValidatesLocally(t *testing.T) {
	srv := fakeAPI(t)
	api, err := client.New(srv.URL)
	require.NoError(t, err)
	a := &app{portal: client.NewPortal(api, client.NewQueryCache(0, zap.NewNop()), nil), out: io.Discard}

	err = runAddStudent(context.Background(), a, []string{"-name", "Ana", "-seat", "40"})
	assert.Error(t, err)
}
