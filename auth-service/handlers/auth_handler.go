package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wanderquest-backend/auth-service/middleware"
	"wanderquest-backend/shared/database/models"
	"wanderquest-backend/shared/utils/apperrors"
	utils "wanderquest-backend/shared/utils/auth"
	"wanderquest-backend/shared/utils/cache"
)

// Authenticator verifies an email/password pair
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type AuthHandler struct {
	credentials Authenticator
	tokens      *utils.TokenIssuer
	blacklist   cache.TokenBlacklist
}

func NewAuthHandler(credentials Authenticator, tokens *utils.TokenIssuer, blacklist cache.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		tokens:      tokens,
		blacklist:   blacklist,
	}
}

// LoginForm is the OAuth2 password-grant form; username carries the email
type LoginForm struct {
	Username string `form:"username" binding:"required" example:"user@example.com"`
	Password string `form:"password" binding:"required" example:"changethis"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// POST /login/access-token
// @Summary Get an access token
// @Description OAuth2 compatible token login, get an access token for future requests
// @Tags login
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "User email"
// @Param password formData string true "User password"
// @Success 200 {object} handlers.TokenResponse
// @Failure 400 {object} apperrors.AppError "Incorrect email or password"
// @Failure 429 {object} apperrors.AppError "Too many login attempts"
// @Router /api/v1/login/access-token [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.Respond(c, apperrors.ValidationFailed.WithMessage(err.Error()))
		return
	}

	user, err := h.credentials.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, utils.ErrInvalidCredentials) {
		log.Warn().Str("email", form.Username).Msg("Login failed")
		apperrors.Respond(c, apperrors.InvalidCredentials)
		return
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	token, _, err := h.tokens.Issue(user.ID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	log.Info().Str("email", user.Email).Msg("User logged in successfully")
	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// POST /logout
// @Summary Log out
// @Description Revoke the current access token until it expires
// @Tags login
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse
// @Failure 401 {object} apperrors.AppError "Missing, expired or revoked token"
// @Failure 403 {object} apperrors.AppError "Invalid token"
// @Failure 503 {object} apperrors.AppError "Token store unavailable"
// @Router /api/v1/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Revoke(c.Request.Context(), middleware.AccessToken(c)); err != nil {
		apperrors.Respond(c, apperrors.StoreUnavailable)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		log.Info().Str("email", user.Email).Msg("User logged out, token blacklisted")
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Successfully logged out"})
}

// Revoke blacklists token for the rest of its lifetime. A token that no longer
// validates needs no entry and is accepted as already revoked. Calling Revoke
// again for the same token rewrites the entry.
func (h *AuthHandler) Revoke(ctx context.Context, token string) error {
	claims, err := h.tokens.Parse(token)
	if err != nil {
		log.Info().Err(err).Msg("Logout with a token that no longer validates")
		return nil
	}

	if err := h.blacklist.Put(ctx, token, h.tokens.RemainingLifetime(claims)); err != nil {
		log.Error().Err(err).Msg("Error blacklisting token")
		return err
	}
	return nil
}
