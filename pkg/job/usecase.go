package job

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"
)

const allJobsKey = "jobs:all"

// Query is one request for the listing page. Facets, when set, are applied
// after the criterion.
type Query struct {
	Text      string
	Criterion Criterion
	Facets    Facets
	Page      int
}

// Caller identifies the signed-in user towards the backend.
type Caller struct {
	Token string
	Email string
}

// UseCase covers the listing page, the recruiter's jobs and job posting.
type UseCase interface {
	Browse(ctx context.Context, q Query) (Page, error)
	Sidebar(ctx context.Context) (Sidebar, error)
	Get(ctx context.Context, id string) (Listing, error)
	Mine(ctx context.Context, c Caller, query string, page int) (Page, error)
	Create(ctx context.Context, c Caller, l Listing) (Listing, error)
	Update(ctx context.Context, c Caller, id string, l Listing) (Listing, error)
	Delete(ctx context.Context, c Caller, id string) error
	// Warm refreshes the cached listing from the backend.
	Warm(ctx context.Context) (int, error)
}

type service struct {
	src      Source
	cache    Cache
	pageSize int
	logger   *log.Logger
	now      func() time.Time
}

// NewService builds the job use case. cache may be nil.
func NewService(src Source, cache Cache, pageSize int, logger *log.Logger) UseCase {
	if pageSize <= 0 {
		pageSize = 6
	}
	if logger == nil {
		logger = log.Default()
	}
	return &service{src: src, cache: cache, pageSize: pageSize, logger: logger, now: time.Now}
}

func (s *service) all(ctx context.Context) ([]Listing, error) {
	if s.cache != nil {
		var cached []Listing
		hit, err := s.cache.GetJSON(ctx, allJobsKey, &cached)
		if err != nil {
			s.logger.Printf("[Jobs] cache read failed: %v", err)
		}
		if hit {
			return cached, nil
		}
	}
	jobs, err := s.src.AllJobs(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, jobs)
	return jobs, nil
}

func (s *service) store(ctx context.Context, jobs []Listing) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, allJobsKey, jobs, 0); err != nil {
		s.logger.Printf("[Jobs] cache write failed: %v", err)
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, allJobsKey); err != nil {
		s.logger.Printf("[Jobs] cache invalidate failed: %v", err)
	}
}

func (s *service) Browse(ctx context.Context, q Query) (Page, error) {
	jobs, err := s.all(ctx)
	if err != nil {
		return Page{}, err
	}
	filtered := FilterByFacets(FilterByCriterion(FilterByQuery(jobs, q.Text), q.Criterion), q.Facets)
	return NewPage(filtered, q.Page, s.pageSize), nil
}

func (s *service) Sidebar(ctx context.Context) (Sidebar, error) {
	jobs, err := s.all(ctx)
	if err != nil {
		return Sidebar{}, err
	}
	return SidebarOptions(jobs, s.now()), nil
}

func (s *service) Get(ctx context.Context, id string) (Listing, error) {
	jobs, err := s.all(ctx)
	if err != nil {
		return Listing{}, err
	}
	for _, j := range jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return Listing{}, ErrNotFound
}

func (s *service) Mine(ctx context.Context, c Caller, query string, page int) (Page, error) {
	jobs, err := s.src.MyJobs(ctx, c.Token, c.Email)
	if err != nil {
		return Page{}, err
	}
	return VisiblePage(jobs, query, "", page, s.pageSize), nil
}

func (s *service) Create(ctx context.Context, c Caller, l Listing) (Listing, error) {
	l = l.normalized()
	l.PostedBy = c.Email
	if err := l.Validate(); err != nil {
		return Listing{}, err
	}
	created, err := s.src.PostJob(ctx, c.Token, l)
	if err != nil {
		return Listing{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, c Caller, id string, l Listing) (Listing, error) {
	if strings.TrimSpace(id) == "" {
		return Listing{}, ErrValidation("job id is required")
	}
	l = l.normalized()
	l.ID = id
	l.PostedBy = c.Email
	if err := l.Validate(); err != nil {
		return Listing{}, err
	}
	updated, err := s.src.EditJob(ctx, c.Token, id, l)
	if err != nil {
		return Listing{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, c Caller, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation("job id is required")
	}
	if err := s.src.DeleteJob(ctx, c.Token, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) Warm(ctx context.Context) (int, error) {
	jobs, err := s.src.AllJobs(ctx)
	if err != nil {
		return 0, err
	}
	s.store(ctx, jobs)
	return len(jobs), nil
}

var logoURL = regexp.MustCompile(`^https?://.*\.(?:png|jpg|jpeg|svg|gif)$`)

const minDescriptionLen = 20

func (l Listing) normalized() Listing {
	l.JobTitle = strings.TrimSpace(l.JobTitle)
	l.CompanyName = strings.TrimSpace(l.CompanyName)
	l.CompanyLogo = strings.TrimSpace(l.CompanyLogo)
	l.JobLocation = strings.TrimSpace(l.JobLocation)
	l.Description = strings.TrimSpace(l.Description)
	l.PostingDate = strings.TrimSpace(l.PostingDate)
	if v, ok := ParseSalaryType(string(l.SalaryType)); ok {
		l.SalaryType = v
	}
	if v, ok := ParseEmploymentType(string(l.EmploymentType)); ok {
		l.EmploymentType = v
	}
	if v, ok := ParseExperienceLevel(string(l.ExperienceLevel)); ok {
		l.ExperienceLevel = v
	}
	skills := make([]string, 0, len(l.Skills))
	seen := map[string]struct{}{}
	for _, sk := range l.Skills {
		sk = strings.TrimSpace(sk)
		key := strings.ToLower(sk)
		if sk == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		skills = append(skills, sk)
	}
	l.Skills = skills
	return l
}

// Validate checks the posting form.
func (l Listing) Validate() error {
	switch {
	case l.JobTitle == "":
		return ErrValidation("job title is required")
	case l.CompanyName == "":
		return ErrValidation("company name is required")
	case l.MinPrice == "" || l.MaxPrice == "":
		return ErrValidation("salary range is required")
	case l.JobLocation == "":
		return ErrValidation("job location is required")
	case l.PostingDate == "":
		return ErrValidation("posting date is required")
	case !l.SalaryType.Valid():
		return ErrValidation("salary type must be one of Hourly, Monthly, Yearly")
	case !l.ExperienceLevel.Valid():
		return ErrValidation("experience level must be one of NoExperience, Internship, Work remotely")
	case !l.EmploymentType.Valid():
		return ErrValidation("employment type must be one of Full-time, Part-time, Temporary, Contract")
	case len([]rune(l.Description)) < minDescriptionLen:
		return ErrValidation("description must be at least 20 characters")
	case !logoURL.MatchString(l.CompanyLogo):
		return ErrValidation("company logo must be an http(s) link to a png, jpg, jpeg, svg or gif image")
	case len(l.Skills) == 0:
		return ErrValidation("at least one skill is required")
	}
	if _, err := time.Parse(time.DateOnly, l.PostingDate); err != nil {
		return ErrValidation("posting date must be YYYY-MM-DD")
	}
	minP, okMin := l.MinPrice.Int()
	maxP, okMax := l.MaxPrice.Int()
	if !okMin || !okMax {
		return ErrValidation("salary range must be numeric")
	}
	if minP > maxP {
		return ErrValidation("minimum salary cannot exceed maximum salary")
	}
	return nil
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
