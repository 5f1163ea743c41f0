package news

import (
	"context"
	"strings"
)

// Article - краткая карточка новости от бэкенда.
type Article struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	URLToImage  string  `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt,omitempty"`
	Source      *Source `json:"source,omitempty"`
}

type Source struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Category string

const (
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryGeneral       Category = "general"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
)

const DefaultCategory = CategoryBusiness

var Categories = []Category{
	CategoryBusiness, CategoryEntertainment, CategoryGeneral, CategoryHealth,
	CategoryScience, CategorySports, CategoryTechnology,
}

// ParseCategory maps "" to the default category and rejects unknown values.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultCategory, true
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Feed - порт к новостному эндпоинту бэкенда.
type Feed interface {
	News(ctx context.Context, query string, category Category) ([]Article, error)
}
