package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AppError is an error that knows how it is presented to the client
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Code + ": " + e.Message
}

// WithMessage returns a copy of e carrying a different client message
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Status: e.Status, Code: e.Code, Message: message}
}

var (
	MissingToken       = &AppError{Status: http.StatusUnauthorized, Code: "missing_token", Message: "Not authenticated"}
	RevokedToken       = &AppError{Status: http.StatusUnauthorized, Code: "revoked_token", Message: "Token has been revoked"}
	ExpiredToken       = &AppError{Status: http.StatusUnauthorized, Code: "expired_token", Message: "Token has expired"}
	InvalidToken       = &AppError{Status: http.StatusForbidden, Code: "invalid_token", Message: "Could not validate credentials"}
	UserNotFound       = &AppError{Status: http.StatusNotFound, Code: "user_not_found", Message: "User not found"}
	InvalidCredentials = &AppError{Status: http.StatusBadRequest, Code: "invalid_credentials", Message: "Incorrect email or password"}
	EmailTaken         = &AppError{Status: http.StatusConflict, Code: "email_taken", Message: "User with this email already exists"}
	ValidationFailed   = &AppError{Status: http.StatusBadRequest, Code: "validation_failed", Message: "Invalid request"}
	TooManyRequests    = &AppError{Status: http.StatusTooManyRequests, Code: "too_many_requests", Message: "Too many login attempts. Please try again later."}
	StoreUnavailable   = &AppError{Status: http.StatusServiceUnavailable, Code: "store_unavailable", Message: "Token store unavailable"}
	Internal           = &AppError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Internal server error"}
)

// Is matches AppErrors by code so WithMessage copies still match their sentinel
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Respond writes err as {"error": ..., "code": ...} and aborts the chain.
// Errors that are not AppErrors are logged and reported as 500.
func Respond(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		appErr = Internal
	}

	_ = c.Error(err)
	if appErr.Status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(appErr.Status, appErr)
}
