package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wanderquest-backend/shared/database/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the unique email index rejects a write
	ErrEmailTaken = errors.New("email already taken")
)

//go:generate mockgen -source=user_repository.go -destination=../mocks/user_repository.go -package=mocks

// UserRepository is the identity store used by the auth and user handlers
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		log.Error().Err(result.Error).Str("id", id.String()).Msg("Failed to get user by ID")
		return nil, fmt.Errorf("get user by id: %w", result.Error)
	}
	return &user, nil
}

// GetByEmail matches the email exactly as stored
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to get user by email")
		return nil, fmt.Errorf("get user by email: %w", result.Error)
	}
	return &user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to create user")
		return fmt.Errorf("create user: %w", result.Error)
	}
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Save(user)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	if result.Error != nil {
		log.Error().Err(result.Error).Str("id", user.ID.String()).Msg("Failed to update user")
		return fmt.Errorf("update user: %w", result.Error)
	}
	return nil
}
