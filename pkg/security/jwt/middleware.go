package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/artem13815/jobboard/pkg/auth"
)

const sessionKey = "session"

// SessionResolver loads the session a token points at.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (auth.Session, error)
}

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256)
// and loads the session named by its subject. On success the session is
// stored in c.Locals("session") and the email in c.Locals("userId").
func NewAuthMiddleware(secret, expectedIssuer string, sessions SessionResolver) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		var tokenStr string
		if strings.Contains(authHeader, " ") {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = strings.TrimSpace(parts[1])
			} else {
				tokenStr = strings.TrimSpace(authHeader)
			}
		} else {
			tokenStr = strings.TrimSpace(authHeader)
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token claims"})
		}
		if expectedIssuer != "" && claims.RegisteredClaims.Issuer != expectedIssuer {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token issuer"})
		}
		sess, err := sessions.Resolve(c.UserContext(), claims.RegisteredClaims.Subject)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) || errors.Is(err, auth.ErrSessionExpired) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "session expired, please log in again"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load session"})
		}
		c.Locals(sessionKey, sess)
		c.Locals("userId", sess.Email)
		return c.Next()
	}
}

// RequireRole lets through only sessions with one of the given roles.
// Must run after the auth middleware.
func RequireRole(roles ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFrom(c)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "not logged in"})
		}
		for _, r := range roles {
			if sess.Role == r {
				return c.Next()
			}
		}
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "not available for role " + string(sess.Role)})
	}
}

// SessionFrom returns the session stored by the auth middleware.
func SessionFrom(c *fiber.Ctx) (auth.Session, bool) {
	sess, ok := c.Locals(sessionKey).(auth.Session)
	return sess, ok
}
