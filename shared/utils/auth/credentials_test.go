package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderquest-backend/shared/database/models"
	"wanderquest-backend/shared/mocks"
	"wanderquest-backend/shared/repository"
)

func newUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return &models.User{ID: uuid.New(), Email: email, HashedPassword: hash}
}

func TestCredentialVerifier_Authenticate(t *testing.T) {
	ctx := context.Background()
	user := newUser(t, "user@example.com", "correct-password")

	t.Run("valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(user, nil)

		got, err := NewCredentialVerifier(repo).Authenticate(ctx, "user@example.com", "correct-password")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(user, nil)

		_, err := NewCredentialVerifier(repo).Authenticate(ctx, "user@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, repository.ErrNotFound)

		_, err := NewCredentialVerifier(repo).Authenticate(ctx, "nobody@example.com", "correct-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("email is case sensitive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "USER@example.com").Return(nil, repository.ErrNotFound)

		_, err := NewCredentialVerifier(repo).Authenticate(ctx, "USER@example.com", "correct-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		disabled := newUser(t, "off@example.com", "correct-password")
		disabled.Disabled = true

		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "off@example.com").Return(disabled, nil)

		_, err := NewCredentialVerifier(repo).Authenticate(ctx, "off@example.com", "correct-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure is not a credential failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockUserRepository(ctrl)
		dbErr := errors.New("connection refused")
		repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(nil, dbErr)

		_, err := NewCredentialVerifier(repo).Authenticate(ctx, "user@example.com", "correct-password")
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}
