package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) CreateUser(ctx context.Context, user *models.User, password string) error {
	return m.Called(ctx, user, password).Error(0)
}

func (m *mockUsers) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUsers) UpdatePassword(ctx context.Context, userID, password string) error {
	return m.Called(ctx, userID, password).Error(0)
}

func (m *mockUsers) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestReadPassword(t *testing.T) {
	t.Run("Пароль из флага", func(t *testing.T) {
		got, err := readPassword("motdepasse", strings.NewReader("ignored\n"), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "motdepasse", got)
	})

	t.Run("Пароль из stdin", func(t *testing.T) {
		got, err := readPassword("", strings.NewReader("secret-boutique\r\nnext"), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "secret-boutique", got)
	})

	t.Run("Пароль без перевода строки", func(t *testing.T) {
		got, err := readPassword("", strings.NewReader("sans-fin-de-ligne"), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "sans-fin-de-ligne", got)
	})

	t.Run("Слишком короткий пароль", func(t *testing.T) {
		_, err := readPassword("", strings.NewReader("court\n"), &bytes.Buffer{})
		assert.ErrorContains(t, err, "не менее 8 символов")
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Создание администратора", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetUserByEmail", ctx, "admin@example.com").
			Return(nil, fmt.Errorf("пользователь с email admin@example.com: %w", repository.ErrNotFound))
		users.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "admin@example.com"
		}), "motdepasse").Return(nil)

		created, err := resetPassword(ctx, users, " admin@example.com ", "motdepasse")

		require.NoError(t, err)
		assert.True(t, created)
		users.AssertExpectations(t)
	})

	t.Run("Обновление пароля", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetUserByEmail", ctx, "admin@example.com").Return(&models.User{ID: "admin-1"}, nil)
		users.On("UpdatePassword", ctx, "admin-1", "motdepasse").Return(nil)

		created, err := resetPassword(ctx, users, "admin@example.com", "motdepasse")

		require.NoError(t, err)
		assert.False(t, created)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Ошибка БД", func(t *testing.T) {
		users := new(mockUsers)
		users.On("GetUserByEmail", ctx, "admin@example.com").Return(nil, assert.AnError)

		_, err := resetPassword(ctx, users, "admin@example.com", "motdepasse")

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Пустой email", func(t *testing.T) {
		_, err := resetPassword(ctx, new(mockUsers), "  ", "motdepasse")
		assert.Error(t, err)
	})
}
