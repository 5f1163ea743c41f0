package job

import (
	"context"
	"errors"
	"time"
)

// Source - порт к бэкенду вакансий. Бэкенд владеет всеми изменениями;
// token is the backend bearer credential of the caller.
type Source interface {
	AllJobs(ctx context.Context) ([]Listing, error)
	MyJobs(ctx context.Context, token, email string) ([]Listing, error)
	PostJob(ctx context.Context, token string, l Listing) (Listing, error)
	EditJob(ctx context.Context, token, id string, l Listing) (Listing, error)
	DeleteJob(ctx context.Context, token, id string) error
}

// Cache is the JSON cache in front of the listing source.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var ErrNotFound = errors.New("job not found")
