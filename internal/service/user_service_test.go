package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
)

type mockUserRepo struct {
	users map[string]models.User
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.users[username]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	user.ID = "user-" + user.Username
	m.users[user.Username] = *user
	return nil
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{}}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{Username: "teacher", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, svc.VerifyPassword(user, "secret123"))
	assert.False(t, svc.VerifyPassword(user, "nope"))

	_, err = svc.Create(context.Background(), dto.CreateUserRequest{Username: "teacher", Password: "secret123"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = svc.Create(context.Background(), dto.CreateUserRequest{Username: "x", Password: "secret123"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	stored, err := svc.GetByUsername(context.Background(), "teacher")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	_, err = svc.GetByUsername(context.Background(), "ghost")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
