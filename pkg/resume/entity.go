package resume

import (
	"context"
	"errors"
	"time"

	"github.com/artem13815/jobboard/pkg/match"
	"github.com/artem13815/jobboard/pkg/nlp"
)

// Analysis is the summary returned by the external AI service. It is the
// authoritative analysis artifact; the PDF itself is never parsed for skills.
type Analysis struct {
	OverallScore     float64 `json:"overall_score"`
	SkillMatchScore  float64 `json:"skill_match_score"`
	Description      string  `json:"description"`
	MatchingAnalysis string  `json:"matching_analysis"`
	Recommendation   string  `json:"recommendation"`
	ExperienceLevel  string  `json:"experienceLevel,omitempty"`
}

// Text is the input of skill extraction.
func (a Analysis) Text() string {
	return nlp.AnalysisText(a.Description, a.MatchingAnalysis, a.Recommendation)
}

// Upload - загруженный файл резюме и необязательное описание вакансии.
type Upload struct {
	Filename       string
	Data           []byte
	JobDescription string
}

// Analyzer - порт внешнего сервиса анализа резюме.
type Analyzer interface {
	UploadResume(ctx context.Context, up Upload) (Analysis, error)
}

// AnalysisError is a failure reported by the analysis service itself.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string { return e.Message }

var (
	ErrFileRequired = errors.New("please select a PDF file")
	ErrNotPDF       = errors.New("please select a valid PDF file")
	ErrTooLarge     = errors.New("resume file is too large")
	// ErrSuperseded is returned when a newer upload replaced this one.
	ErrSuperseded = errors.New("analysis superseded by a newer upload")
)

type State string

const (
	StateIdle         State = "idle"
	StateUploading    State = "uploading"
	StateAnalyzing    State = "analyzing"
	StateMatchesShown State = "matches_shown"
	StateMatchesEmpty State = "matches_empty"
	StateFailed       State = "failed"
)

// Snapshot is what the analyzer page renders.
type Snapshot struct {
	State      State         `json:"state"`
	Generation uint64        `json:"generation"`
	Analysis   *Analysis     `json:"analysis,omitempty"`
	Skills     nlp.SkillSet  `json:"skills"`
	Matches    *match.Result `json:"matches,omitempty"`
	Error      string        `json:"error,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
