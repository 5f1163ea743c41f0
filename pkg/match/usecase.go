package match

import (
	"context"
	"log"
	"strings"

	"github.com/artem13815/jobboard/pkg/nlp"
)

// Result of a match request. NoSkills means nothing could be matched because
// no skill was extracted; no request was made in that case.
type Result struct {
	Jobs     []MatchedJob `json:"jobs"`
	Summary  *Summary     `json:"summary"`
	NoSkills bool         `json:"noSkills,omitempty"`
}

type UseCase interface {
	FetchMatches(ctx context.Context, skills nlp.SkillSet, experienceLevel string) Result
}

type service struct {
	matcher Matcher
	minPct  int
	logger  *log.Logger
}

func NewService(m Matcher, minPct int, logger *log.Logger) UseCase {
	if minPct <= 0 {
		minPct = MinMatchPercentage
	}
	if logger == nil {
		logger = log.Default()
	}
	return &service{matcher: m, minPct: minPct, logger: logger}
}

// FetchMatches never fails: a backend error degrades to an empty result.
func (s *service) FetchMatches(ctx context.Context, skills nlp.SkillSet, experienceLevel string) Result {
	if skills.IsEmpty() {
		s.logger.Printf("[Match] no skills extracted, skipping match request")
		return Result{Jobs: []MatchedJob{}, NoSkills: true}
	}
	req := Request{Skills: skills.Slice(), MinMatchPercentage: s.minPct}
	if lvl := strings.TrimSpace(experienceLevel); lvl != "" {
		req.ExperienceLevel = &lvl
	}
	resp, err := s.matcher.MatchJobs(ctx, req)
	if err != nil {
		s.logger.Printf("[Match] match request failed, showing no matches: %v", err)
		return Result{Jobs: []MatchedJob{}}
	}
	jobs := resp.Jobs
	if jobs == nil {
		jobs = []MatchedJob{}
	}
	return Result{Jobs: jobs, Summary: resp.Summary}
}
