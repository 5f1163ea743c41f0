package memory

import (
	"context"
	"sync"
	"time"

	"github.com/artem13815/jobboard/pkg/auth"
)

// SessionRepository implements auth.SessionStore in process memory. Used when
// no database is configured and in tests.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]auth.Session)}
}

func (r *SessionRepository) Save(ctx context.Context, s auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, id string) (auth.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return auth.Session{}, auth.ErrNotFound
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return auth.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteExpired drops sessions that expired before now and returns their ids.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			ids = append(ids, id)
		}
	}
	return ids, nil
}
