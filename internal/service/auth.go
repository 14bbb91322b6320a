// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/model"
	"github.com/inkwell/inkwell/internal/repository"
)

// User-visible auth errors. The login failure message is deliberately the
// same for an unknown username and a wrong password so the endpoint cannot
// be used to enumerate accounts.
var (
	ErrUsernameMissing = errors.New("username not provided")
	ErrPasswordMissing = errors.New("password not provided")
	ErrBadCredentials  = errors.New("incorrect username or password")
)

// AlreadyRegisteredError reports a duplicate registration attempt.
type AlreadyRegisteredError struct {
	Username string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("user %s is already registered", e.Username)
}

// UserStore is the credential persistence needed by AuthService.
// Satisfied by *repository.Repository.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// AuthService implements the register/login rules.
type AuthService struct {
	users UserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register validates credentials and creates a new user.
// Validation order is fixed: empty username first, then empty password.
// A unique-constraint race at insert time is reported as
// AlreadyRegisteredError, never as a raw storage error.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, ErrUsernameMissing
	}
	if password == "" {
		return nil, ErrPasswordMissing
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, &AlreadyRegisteredError{Username: username}
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the authenticated user.
// Both failure modes (unknown username, wrong password) collapse into
// ErrBadCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrBadCredentials
	}

	return user, nil
}

// IsUserError reports whether err carries a message meant for the user,
// as opposed to an internal failure.
func IsUserError(err error) bool {
	var conflict *AlreadyRegisteredError
	return errors.Is(err, ErrUsernameMissing) ||
		errors.Is(err, ErrPasswordMissing) ||
		errors.Is(err, ErrBadCredentials) ||
		errors.Is(err, ErrTitleRequired) ||
		errors.As(err, &conflict)
}
