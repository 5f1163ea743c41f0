package auth

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const minPasswordLen = 8

// AuthUseCase describes the session lifecycle: sign up, login, per-request
// resolution and logout.
type AuthUseCase interface {
	Signup(ctx context.Context, in SignupInput) error
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Resolve(ctx context.Context, sessionID string) (Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

type AuthResult struct {
	Session Session
	Token   string
}

type authService struct {
	backend    Backend
	store      SessionStore
	tokens     TokenGenerator
	defaultTTL time.Duration
	onLogout   []func(sessionID string)
	now        func() time.Time
}

// NewAuthService returns default implementation of AuthUseCase. defaultTTL is
// used when the backend does not say how long its token lives. onLogout hooks
// run after the session is deleted, on logout and on expiry.
func NewAuthService(backend Backend, store SessionStore, tokens TokenGenerator, defaultTTL time.Duration, onLogout ...func(sessionID string)) AuthUseCase {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &authService{
		backend:    backend,
		store:      store,
		tokens:     tokens,
		defaultTTL: defaultTTL,
		onLogout:   onLogout,
		now:        time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) error {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return ErrValidation("email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrValidation("email is invalid")
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(in.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	role := RoleStudent
	if strings.TrimSpace(in.Role) != "" {
		r, ok := ParseRole(in.Role)
		if !ok {
			return ErrInvalidRole
		}
		role = r
	}
	return s.backend.SignUp(ctx, email, in.Password, role)
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrValidation("email and password are required")
	}
	res, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	if res.Token == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	role := RoleStudent
	if res.Role != "" {
		r, ok := ParseRole(res.Role)
		if !ok {
			return AuthResult{}, ErrInvalidRole
		}
		role = r
	}
	if res.Email == "" {
		res.Email = email
	}

	now := s.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		Email:     res.Email,
		Name:      res.Name,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(ParseExpiresIn(res.ExpiresIn, s.defaultTTL)),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, sess)
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return AuthResult{}, err
	}
	return AuthResult{Session: sess, Token: token}, nil
}

func (s *authService) Resolve(ctx context.Context, sessionID string) (Session, error) {
	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		_ = s.store.Delete(ctx, sessionID)
		s.release(sessionID)
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.release(sessionID)
	return nil
}

func (s *authService) release(sessionID string) {
	for _, fn := range s.onLogout {
		fn(sessionID)
	}
}

// ParseExpiresIn reads the backend's "<n>h" lifetime; anything else falls
// back to def.
func ParseExpiresIn(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if !strings.HasSuffix(v, "h") {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSuffix(v, "h"))
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Hour
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
