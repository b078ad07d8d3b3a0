package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wanderquest-backend/auth-service/middleware"
	"wanderquest-backend/shared/database/models"
	"wanderquest-backend/shared/repository"
	"wanderquest-backend/shared/utils/apperrors"
	utils "wanderquest-backend/shared/utils/auth"
)

type UserHandler struct {
	users repository.UserRepository
	now   func() time.Time
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email,max=255" example:"user@example.com"`
	Password  string `json:"password" binding:"required" example:"securepassword123"`
	FirstName string `json:"first_name" binding:"max=255" example:"John"`
	LastName  string `json:"last_name" binding:"max=255" example:"Doe"`
}

// POST /users/signup
// @Summary Register new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body SignupRequest true "User registration data"
// @Success 200 {object} models.UserPublic
// @Failure 400 {object} apperrors.AppError "Invalid email or password"
// @Failure 409 {object} apperrors.AppError "User with this email already exists"
// @Router /api/v1/users/signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ValidationFailed.WithMessage(err.Error()))
		return
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		apperrors.Respond(c, apperrors.ValidationFailed.WithMessage(err.Error()))
		return
	}

	ctx := c.Request.Context()
	if err := h.checkEmailUnique(c, req.Email, nil); err != nil {
		apperrors.Respond(c, err)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	now := h.now()
	user := &models.User{
		Email:          req.Email,
		HashedPassword: hashedPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			err = apperrors.EmailTaken
		}
		apperrors.Respond(c, err)
		return
	}

	log.Info().Str("email", user.Email).Msg("User registered")
	c.JSON(http.StatusOK, user.Public())
}

// GET /users/me
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserPublic
// @Failure 401 {object} apperrors.AppError
// @Router /api/v1/users/me [get]
func (h *UserHandler) ReadMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Respond(c, apperrors.MissingToken)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// PATCH /users/me
// @Summary Update own profile
// @Description Only fields present in the body are changed. An empty body is rejected.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UserPatch true "Fields to update"
// @Success 200 {object} models.UserPublic
// @Failure 400 {object} apperrors.AppError
// @Failure 409 {object} apperrors.AppError "User with this email already exists"
// @Router /api/v1/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apperrors.Respond(c, apperrors.MissingToken)
		return
	}

	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apperrors.Respond(c, apperrors.ValidationFailed.WithMessage(err.Error()))
		return
	}
	if patch.IsEmpty() {
		apperrors.Respond(c, apperrors.ValidationFailed.WithMessage("no fields to update"))
		return
	}

	if email, ok := patch.Email.Get(); ok {
		if err := utils.ValidateEmail(email); err != nil {
			apperrors.Respond(c, apperrors.ValidationFailed.WithMessage(err.Error()))
			return
		}
		if err := h.checkEmailUnique(c, email, user); err != nil {
			apperrors.Respond(c, err)
			return
		}
	}

	var hashedPassword string
	if password, ok := patch.Password.Get(); ok {
		if err := utils.ValidatePassword(password); err != nil {
			apperrors.Respond(c, apperrors.ValidationFailed.WithMessage(err.Error()))
			return
		}
		var err error
		if hashedPassword, err = utils.HashPassword(password); err != nil {
			apperrors.Respond(c, err)
			return
		}
	}

	updated := *user
	patch.Apply(&updated, hashedPassword, h.now())

	if err := h.users.Update(c.Request.Context(), &updated); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			err = apperrors.EmailTaken
		}
		apperrors.Respond(c, err)
		return
	}

	log.Info().Str("email", updated.Email).Msg("User updated")
	c.JSON(http.StatusOK, updated.Public())
}

// checkEmailUnique fails with EmailTaken when email belongs to a user other than self
func (h *UserHandler) checkEmailUnique(c *gin.Context, email string, self *models.User) error {
	existing, err := h.users.GetByEmail(c.Request.Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if self != nil && existing.ID == self.ID {
		return nil
	}
	log.Warn().Str("email", email).Msg("Email already in use")
	return apperrors.EmailTaken
}
