package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	articles []Article
	err      error
	calls    []string
}

func (f *fakeFeed) News(ctx context.Context, query string, category Category) ([]Article, error) {
	f.calls = append(f.calls, string(category)+"|"+query)
	return f.articles, f.err
}

type mapCache map[string][]byte

func (m mapCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	b, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m mapCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	m[key] = b
	return err
}

func articles(n int) []Article {
	out := make([]Article, n)
	for i := range out {
		out[i] = Article{Title: fmt.Sprintf("a%d", i+1)}
	}
	return out
}

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestSearchDefaultsToBusiness(t *testing.T) {
	feed := &fakeFeed{articles: articles(20)}
	uc := NewService(feed, nil, 9, quiet())

	p, err := uc.Search(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, CategoryBusiness, p.Category)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.PageCount)
	assert.Len(t, p.Items, 9)
	assert.Equal(t, []string{"business|"}, feed.calls)

	p, err = uc.Search(context.Background(), " jobs ", "Technology", 3)
	require.NoError(t, err)
	assert.Len(t, p.Items, 2)
	assert.Equal(t, "a19", p.Items[0].Title)
	assert.Equal(t, "technology|jobs", feed.calls[1])
}

func TestSearchRejectsUnknownCategory(t *testing.T) {
	uc := NewService(&fakeFeed{}, nil, 9, quiet())
	_, err := uc.Search(context.Background(), "", "politics", 1)
	var verr ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestSearchCachesPerCategoryAndQuery(t *testing.T) {
	feed := &fakeFeed{articles: articles(3)}
	cache := mapCache{}
	uc := NewService(feed, cache, 9, quiet())
	ctx := context.Background()

	_, err := uc.Search(ctx, "AI", "science", 1)
	require.NoError(t, err)
	_, err = uc.Search(ctx, "ai", "science", 1)
	require.NoError(t, err)
	assert.Len(t, feed.calls, 1)

	_, err = uc.Search(ctx, "ai", "health", 1)
	require.NoError(t, err)
	assert.Len(t, feed.calls, 2)
}

func TestSearchPropagatesFeedError(t *testing.T) {
	uc := NewService(&fakeFeed{err: errors.New("down")}, nil, 9, quiet())
	_, err := uc.Search(context.Background(), "", "sports", 1)
	assert.Error(t, err)
}
