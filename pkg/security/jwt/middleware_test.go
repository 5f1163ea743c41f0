package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/repository/memory"
)

type storeResolver struct{ store *memory.SessionRepository }

func (r storeResolver) Resolve(ctx context.Context, id string) (auth.Session, error) {
	return r.store.Load(ctx, id)
}

func setup(t *testing.T) (*fiber.App, *memory.SessionRepository, *Generator) {
	t.Helper()
	store := memory.NewSessionRepository()
	gen := NewGenerator("secret", "jobboard")
	app := fiber.New()
	mw := NewAuthMiddleware("secret", "jobboard", storeResolver{store})
	app.Get("/me", mw, func(c *fiber.Ctx) error {
		sess, _ := SessionFrom(c)
		return c.SendString(sess.Email)
	})
	app.Get("/recruiter", mw, RequireRole(auth.RoleRecruiter), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, store, gen
}

func do(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestMiddlewareLoadsSession(t *testing.T) {
	app, store, gen := setup(t)
	ctx := context.Background()
	sess := auth.Session{ID: "s1", Email: "st@u.edu", Role: auth.RoleStudent, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))
	token, err := gen.Generate(ctx, sess)
	require.NoError(t, err)

	code, body := do(t, app, "/me", token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "st@u.edu", body)

	code, _ = do(t, app, "/recruiter", token)
	assert.Equal(t, http.StatusForbidden, code)

	require.NoError(t, store.Delete(ctx, "s1"))
	code, _ = do(t, app, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, code, "logged out session is rejected")
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	app, _, _ := setup(t)

	code, _ := do(t, app, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, app, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, code)

	other := NewGenerator("other-secret", "jobboard")
	token, err := other.Generate(context.Background(), auth.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	code, _ = do(t, app, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRecruiterAllowed(t *testing.T) {
	app, store, gen := setup(t)
	ctx := context.Background()
	sess := auth.Session{ID: "r1", Email: "hr@acme.example", Role: auth.RoleRecruiter, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))
	token, err := gen.Generate(ctx, sess)
	require.NoError(t, err)

	code, body := do(t, app, "/recruiter", token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}
