package database

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wanderquest-backend/shared/database/models"
	utils "wanderquest-backend/shared/utils/auth"
)

// CreateDemoUser inserts a user with the given credentials unless the email is taken
func CreateDemoUser(db *gorm.DB, email, password, firstName, lastName string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Info().Str("email", email).Msg("Demo user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := models.User{
		Email:          email,
		HashedPassword: hashedPassword,
		FirstName:      firstName,
		LastName:       lastName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Info().Str("email", email).Str("id", user.ID.String()).Msg("Demo user created")
	return nil
}
