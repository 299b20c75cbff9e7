package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkarpov/taskman-server/internal/apierrors"
	"github.com/dkarpov/taskman-server/internal/logger"
	"github.com/dkarpov/taskman-server/internal/model"
)

// Auth provides user registration and login on top of the credential store.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a user with a bcrypt-derived password hash. Emails are
// lowercased so uniqueness is case-insensitive. The plaintext password is
// never persisted or logged.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	a.logger.Debug("Auth service: starting user registration", "email", email)

	existingUser, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: email already registered", "email", email)
		return model.User{}, apierrors.NewEmailTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		// The unique index closes the window between the existence check
		// and the insert.
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, apierrors.NewEmailTaken()
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "user_id", created.ID)

	return created, nil
}

// Login verifies credentials and issues an access token. The failure is the
// same for an unknown email and a wrong password.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.logger.Debug("Auth service: starting user login", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierrors.NewAuthFailed()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apierrors.NewAuthFailed()
	}

	tokenString, err := a.tokenManager.IssueAccessToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return tokenString, nil
}
