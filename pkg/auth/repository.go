package auth

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrInvalidRole        = errors.New("role must be student or recruiter")
)

// SessionStore abstracts persistence of sessions.
// Implementations may be in-memory or SQL.
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// SignInResult is what the backend returns on sign in.
type SignInResult struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	ExpiresIn string `json:"expiresIn"`
}

// Backend - порт к эндпоинтам аутентификации бэкенда.
type Backend interface {
	SignIn(ctx context.Context, email, password string) (SignInResult, error)
	SignUp(ctx context.Context, email, password string, role Role) error
}
