package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkarpov/taskman-server/internal/apierrors"
	"github.com/dkarpov/taskman-server/internal/logger"
	"github.com/dkarpov/taskman-server/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Auth handles HTTP endpoints for registration and login.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerRequest) validate() []apierrors.FieldError {
	var errs []apierrors.FieldError
	errs = requireNonEmpty("name", r.Name, errs, "name is required")
	errs = requireEmail("email", r.Email, errs)
	errs = requireMinLength("password", r.Password, 6, errs, "password must be at least 6 characters")
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) validate() []apierrors.FieldError {
	var errs []apierrors.FieldError
	errs = requireEmail("email", r.Email, errs)
	errs = requireNonEmpty("password", r.Password, errs, "password is required")
	return errs
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, h.logger, apierrors.NewValidation(apierrors.FieldError{
			Field:   "body",
			Message: "invalid request body",
		}))
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		handleError(c, h.logger, apierrors.NewValidation(errs...))
		return
	}

	user, err := h.service.Register(c.Request.Context(), model.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login verifies credentials and returns a bearer token.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, h.logger, apierrors.NewValidation(apierrors.FieldError{
			Field:   "body",
			Message: "invalid request body",
		}))
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		handleError(c, h.logger, apierrors.NewValidation(errs...))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token})
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
