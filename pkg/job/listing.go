package job

import (
	"strings"

	"github.com/artem13815/jobboard/pkg/paging"
)

// Criterion is the single filter value picked in the sidebar. The same value
// is tried against location, salary cap, posting date, experience level,
// salary type and employment type, and a job is kept if any of them accepts
// it. Empty means no criterion.
type Criterion string

// Page is one visible page of the listing.
type Page struct {
	Items        []Listing `json:"items"`
	TotalMatched int       `json:"totalMatched"`
	PageCount    int       `json:"pageCount"`
}

// VisiblePage filters all by query and criterion and returns the requested
// 1-based page. The page is not clamped: callers keep it within PageCount.
func VisiblePage(all []Listing, query string, criterion Criterion, page, pageSize int) Page {
	filtered := FilterByCriterion(FilterByQuery(all, query), criterion)
	return NewPage(filtered, page, pageSize)
}

// NewPage slices an already filtered list.
func NewPage(filtered []Listing, page, pageSize int) Page {
	return Page{
		Items:        paging.Slice(filtered, page, pageSize),
		TotalMatched: len(filtered),
		PageCount:    paging.PageCount(len(filtered), pageSize),
	}
}

// FilterByQuery keeps jobs whose title contains query, ignoring case.
// An empty query keeps everything.
func FilterByQuery(jobs []Listing, query string) []Listing {
	if query == "" {
		return jobs
	}
	q := strings.ToLower(query)
	out := make([]Listing, 0, len(jobs))
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.JobTitle), q) {
			out = append(out, j)
		}
	}
	return out
}

// FilterByCriterion keeps jobs for which any field accepts the criterion.
func FilterByCriterion(jobs []Listing, c Criterion) []Listing {
	if c == "" {
		return jobs
	}
	out := make([]Listing, 0, len(jobs))
	for _, j := range jobs {
		if j.Accepts(c) {
			out = append(out, j)
		}
	}
	return out
}

// Accepts reports whether any of the filterable fields matches c.
func (j Listing) Accepts(c Criterion) bool {
	s := string(c)
	if strings.EqualFold(j.JobLocation, s) {
		return true
	}
	if maxPrice, ok := j.MaxPrice.Int(); ok {
		if n, ok := leadingInt(s); ok && n == maxPrice {
			return true
		}
	}
	if j.PostingDate >= s {
		return true
	}
	return strings.EqualFold(string(j.ExperienceLevel), s) ||
		strings.EqualFold(string(j.SalaryType), s) ||
		strings.EqualFold(string(j.EmploymentType), s)
}

// Facets is the stricter filter: every non-empty facet must match.
type Facets struct {
	Location        string
	SalaryCap       *int
	SalaryType      SalaryType
	PostedSince     string
	ExperienceLevel ExperienceLevel
	EmploymentType  EmploymentType
}

func (f Facets) IsZero() bool {
	return f.Location == "" && f.SalaryCap == nil && f.SalaryType == "" &&
		f.PostedSince == "" && f.ExperienceLevel == "" && f.EmploymentType == ""
}

// FilterByFacets keeps jobs matching all set facets. A salary cap keeps jobs
// whose max price does not exceed it.
func FilterByFacets(jobs []Listing, f Facets) []Listing {
	if f.IsZero() {
		return jobs
	}
	out := make([]Listing, 0, len(jobs))
	for _, j := range jobs {
		if f.match(j) {
			out = append(out, j)
		}
	}
	return out
}

func (f Facets) match(j Listing) bool {
	if f.Location != "" && !strings.EqualFold(j.JobLocation, f.Location) {
		return false
	}
	if f.SalaryCap != nil {
		maxPrice, ok := j.MaxPrice.Int()
		if !ok || maxPrice > *f.SalaryCap {
			return false
		}
	}
	if f.SalaryType != "" && !strings.EqualFold(string(j.SalaryType), string(f.SalaryType)) {
		return false
	}
	if f.PostedSince != "" && j.PostingDate < f.PostedSince {
		return false
	}
	if f.ExperienceLevel != "" && !strings.EqualFold(string(j.ExperienceLevel), string(f.ExperienceLevel)) {
		return false
	}
	if f.EmploymentType != "" && !strings.EqualFold(string(j.EmploymentType), string(f.EmploymentType)) {
		return false
	}
	return true
}
