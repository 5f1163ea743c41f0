package match

import (
	"context"

	"github.com/artem13815/jobboard/pkg/job"
)

// MinMatchPercentage is the lowest match score the backend should return.
const MinMatchPercentage = 10

// MatchedJob - вакансия с оценкой совпадения, посчитанной бэкендом.
type MatchedJob struct {
	job.Listing
	MatchPercentage     float64  `json:"matchPercentage"`
	TotalSkillsMatched  int      `json:"totalSkillsMatched"`
	TotalSkillsRequired int      `json:"totalSkillsRequired"`
	MatchedSkills       []string `json:"matchedSkills"`
}

// Summary is the backend's histogram of match quality.
type Summary struct {
	Total     int `json:"total"`
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
}

type Request struct {
	Skills             []string `json:"skills"`
	ExperienceLevel    *string  `json:"experienceLevel"`
	MinMatchPercentage int      `json:"minMatchPercentage"`
}

type Response struct {
	Jobs    []MatchedJob `json:"jobs"`
	Summary *Summary     `json:"summary"`
}

// Matcher - порт к эндпоинту подбора вакансий.
type Matcher interface {
	MatchJobs(ctx context.Context, req Request) (Response, error)
}
