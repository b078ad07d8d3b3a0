package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"wanderquest-backend/shared/database/models"
	"wanderquest-backend/shared/repository"
)

// ErrInvalidCredentials covers unknown email, wrong password and disabled account alike
var ErrInvalidCredentials = errors.New("incorrect email or password")

// UserFinder looks a user up by the exact stored email
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type CredentialVerifier struct {
	users UserFinder
}

func NewCredentialVerifier(users UserFinder) *CredentialVerifier {
	return &CredentialVerifier{users: users}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// equalizeTiming spends one bcrypt comparison so unknown emails cost the same as wrong passwords
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = HashPassword("wanderquest-dummy-password")
	})
	CheckPasswordHash(password, dummyHash)
}

// Authenticate returns the user owning email when password matches its hash
func (v *CredentialVerifier) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		equalizeTiming(password)
		log.Warn().Str("email", email).Msg("Authentication failed for non-existent user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !CheckPasswordHash(password, user.HashedPassword) {
		log.Warn().Str("email", email).Msg("Authentication failed: incorrect password")
		return nil, ErrInvalidCredentials
	}

	if user.Disabled {
		log.Warn().Str("email", email).Msg("Authentication failed: account disabled")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
