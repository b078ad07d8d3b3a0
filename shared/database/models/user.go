package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	HashedPassword string    `json:"-" gorm:"size:255;not null"`
	FirstName      string    `json:"first_name" gorm:"size:255"`
	LastName       string    `json:"last_name" gorm:"size:255"`
	Phone          string    `json:"phone" gorm:"size:20"`
	Bio            string    `json:"bio" gorm:"size:500"`
	Disabled       bool      `json:"disabled" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserPublic is the shape of a user returned to clients
type UserPublic struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Bio       string    `json:"bio"`
}

func (u *User) Public() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Bio:       u.Bio,
	}
}
