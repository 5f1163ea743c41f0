package news

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/artem13815/jobboard/pkg/paging"
)

// Cache is the JSON cache in front of the feed.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Page struct {
	Category  Category  `json:"category"`
	Query     string    `json:"query"`
	Items     []Article `json:"items"`
	Total     int       `json:"total"`
	Page      int       `json:"page"`
	PageCount int       `json:"pageCount"`
}

type UseCase interface {
	Search(ctx context.Context, query, category string, page int) (Page, error)
}

type service struct {
	feed     Feed
	cache    Cache
	pageSize int
	logger   *log.Logger
}

func NewService(feed Feed, cache Cache, pageSize int, logger *log.Logger) UseCase {
	if pageSize <= 0 {
		pageSize = 9
	}
	if logger == nil {
		logger = log.Default()
	}
	return &service{feed: feed, cache: cache, pageSize: pageSize, logger: logger}
}

func (s *service) Search(ctx context.Context, query, category string, page int) (Page, error) {
	cat, ok := ParseCategory(category)
	if !ok {
		return Page{}, ErrValidation(fmt.Sprintf("unknown category %q", category))
	}
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}

	key := cacheKey(cat, query)
	var articles []Article
	hit := false
	if s.cache != nil {
		var err error
		hit, err = s.cache.GetJSON(ctx, key, &articles)
		if err != nil {
			s.logger.Printf("[News] cache read failed: %v", err)
		}
	}
	if !hit {
		var err error
		articles, err = s.feed.News(ctx, query, cat)
		if err != nil {
			return Page{}, err
		}
		if s.cache != nil {
			if err := s.cache.SetJSON(ctx, key, articles, 0); err != nil {
				s.logger.Printf("[News] cache write failed: %v", err)
			}
		}
	}

	return Page{
		Category:  cat,
		Query:     query,
		Items:     paging.Slice(articles, page, s.pageSize),
		Total:     len(articles),
		Page:      page,
		PageCount: paging.PageCount(len(articles), s.pageSize),
	}, nil
}

func cacheKey(cat Category, query string) string {
	return "news:" + string(cat) + ":" + strings.ToLower(query)
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
