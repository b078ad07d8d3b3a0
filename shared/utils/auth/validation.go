package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 40
)

var validate = validator.New()

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}

	if err := validate.Var(email, "email"); err != nil {
		return errors.New("invalid email format")
	}

	if len(email) > 255 {
		return errors.New("email must be at most 255 characters")
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > PasswordMaxLength {
		return errors.New("password must be at most 40 characters")
	}
	return nil
}
