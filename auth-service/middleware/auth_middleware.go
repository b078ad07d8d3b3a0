package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wanderquest-backend/shared/database/models"
	"wanderquest-backend/shared/repository"
	"wanderquest-backend/shared/utils/apperrors"
	utils "wanderquest-backend/shared/utils/auth"
	"wanderquest-backend/shared/utils/cache"
)

// UserLoader resolves a token subject to a user record
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthGate authenticates bearer tokens: revocation first, then signature and
// expiry, then the user record.
type AuthGate struct {
	blacklist cache.TokenBlacklist
	tokens    *utils.TokenIssuer
	users     UserLoader
}

func NewAuthGate(blacklist cache.TokenBlacklist, tokens *utils.TokenIssuer, users UserLoader) *AuthGate {
	return &AuthGate{
		blacklist: blacklist,
		tokens:    tokens,
		users:     users,
	}
}

// Authenticate runs the gate checks for token and returns the owning user
func (g *AuthGate) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.MissingToken
	}

	// A revoked token reports revoked even when it has also expired.
	revoked, err := g.blacklist.Exists(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("Token blacklist lookup failed")
		return nil, apperrors.StoreUnavailable
	}
	if revoked {
		return nil, apperrors.RevokedToken
	}

	claims, err := g.tokens.Parse(token)
	if errors.Is(err, utils.ErrTokenExpired) {
		return nil, apperrors.ExpiredToken
	}
	if err != nil {
		log.Warn().Err(err).Msg("Token validation error")
		return nil, apperrors.InvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.InvalidToken
	}

	user, err := g.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn().Str("user_id", userID.String()).Msg("User not found")
		return nil, apperrors.UserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Middleware rejects requests that do not carry a usable bearer token and
// stores the resolved user for the handlers
func (g *AuthGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			apperrors.Respond(c, apperrors.MissingToken)
			return
		}

		user, err := g.Authenticate(c.Request.Context(), token)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		log.Debug().Str("email", user.Email).Msg("User authenticated")
		setSession(c, user, token)
		c.Next()
	}
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header value
func ExtractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
