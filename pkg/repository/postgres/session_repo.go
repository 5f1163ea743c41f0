package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobboard/pkg/auth"
)

// SessionRepository implements auth.SessionStore backed by PostgreSQL (pgx).
// The schema is created by the storage migrations.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Save(ctx context.Context, s auth.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (id, backend_token, email, name, role, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			backend_token = EXCLUDED.backend_token,
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			expires_at = EXCLUDED.expires_at
	`, s.ID, s.Token, s.Email, s.Name, string(s.Role), s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *SessionRepository) Load(ctx context.Context, id string) (auth.Session, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, backend_token, email, name, role, created_at, expires_at
		FROM sessions WHERE id = $1
	`, id)
	var (
		s                    auth.Session
		role                 string
		createdAt, expiresAt time.Time
	)
	if err := row.Scan(&s.ID, &s.Token, &s.Email, &s.Name, &role, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Session{}, auth.ErrNotFound
		}
		return auth.Session{}, err
	}
	parsed, ok := auth.ParseRole(role)
	if !ok {
		return auth.Session{}, auth.ErrInvalidRole
	}
	s.Role = parsed
	s.CreatedAt = createdAt.UTC()
	s.ExpiresAt = expiresAt.UTC()
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrNotFound
	}
	return nil
}

// DeleteExpired removes sessions that expired before now and returns their ids.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM sessions WHERE expires_at <= $1 RETURNING id`, now)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
