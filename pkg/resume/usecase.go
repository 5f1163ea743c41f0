package resume

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/artem13815/jobboard/pkg/match"
	"github.com/artem13815/jobboard/pkg/nlp"
)

const (
	msgAnalysisFailed = "Analysis failed."
	msgConnection     = "Connection error. Please try again."
)

// AnalysisService describes the resume analyzer page.
type AnalysisService interface {
	// Analyze uploads the resume, extracts skills from the analysis and
	// fetches matching jobs, strictly one after another.
	Analyze(ctx context.Context, session string, up Upload) (Snapshot, error)
	State(session string) Snapshot
	Forget(session string)
}

type analysisService struct {
	analyzer Analyzer
	matches  match.UseCase
	tracker  *Tracker
	logger   *log.Logger
}

// NewAnalysisService creates the default implementation.
func NewAnalysisService(analyzer Analyzer, matches match.UseCase, tracker *Tracker, logger *log.Logger) AnalysisService {
	if tracker == nil {
		tracker = NewTracker()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &analysisService{analyzer: analyzer, matches: matches, tracker: tracker, logger: logger}
}

func (s *analysisService) Analyze(ctx context.Context, session string, up Upload) (Snapshot, error) {
	if err := ValidatePDF(up.Filename, up.Data); err != nil {
		return s.tracker.Snapshot(session), err
	}
	up.JobDescription = strings.TrimSpace(up.JobDescription)

	gen := s.tracker.Begin(session)
	analysis, err := s.analyzer.UploadResume(ctx, up)
	if err != nil {
		msg := msgConnection
		var aerr *AnalysisError
		if errors.As(err, &aerr) {
			msg = aerr.Message
			if msg == "" {
				msg = msgAnalysisFailed
			}
		}
		s.logger.Printf("[Resume] analysis failed (session %s, gen %d): %v", session, gen, err)
		if !s.tracker.Fail(session, gen, msg) {
			return s.tracker.Snapshot(session), ErrSuperseded
		}
		return s.tracker.Snapshot(session), &AnalysisError{Message: msg}
	}

	skills := nlp.ExtractSkills(analysis.Text())
	if !s.tracker.Analyzed(session, gen, analysis, skills) {
		return s.tracker.Snapshot(session), ErrSuperseded
	}

	res := s.matches.FetchMatches(ctx, skills, analysis.ExperienceLevel)
	if !s.tracker.Matched(session, gen, res) {
		return s.tracker.Snapshot(session), ErrSuperseded
	}
	return s.tracker.Snapshot(session), nil
}

func (s *analysisService) State(session string) Snapshot {
	return s.tracker.Snapshot(session)
}

func (s *analysisService) Forget(session string) {
	s.tracker.Forget(session)
}
