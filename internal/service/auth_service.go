package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opentocoder/storefront/internal/auth"
	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/store"
	"github.com/opentocoder/storefront/internal/util"
)

var (
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration and login
type AuthService struct {
	store     *store.Store
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store *store.Store, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    util.GetLogger(),
	}
}

// Register creates a new user and issues a token
func (as *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if len(username) < 3 {
		return nil, "", ErrUsernameTooShort
	}
	if len(password) < 6 {
		return nil, "", ErrPasswordTooShort
	}
	if !strings.Contains(email, "@") {
		return nil, "", ErrInvalidEmail
	}

	taken, err := as.store.EmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	taken, err = as.store.UsernameExists(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
	}
	if err := as.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.CreateToken(user.ID, user.Email, user.Role, as.jwtSecret, as.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	as.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login verifies credentials and issues a token
func (as *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := as.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.CreateToken(user.ID, user.Email, user.Role, as.jwtSecret, as.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
