package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/artem13815/jobboard/pkg/job"
)

// File is a binary attachment as the backend serialises it:
// {"type": "Buffer", "data": [bytes...]}.
type File struct {
	Data []byte
}

func (f File) Provided() bool { return len(f.Data) > 0 }

func (f *File) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data []int `json:"data"`
	}
	if string(b) == "null" {
		f.Data = nil
		return nil
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	f.Data = make([]byte, len(raw.Data))
	for i, v := range raw.Data {
		f.Data[i] = byte(v)
	}
	return nil
}

// MarshalJSON hides the file body; it is served by a separate download route.
func (f File) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Provided bool `json:"provided"`
		Size     int  `json:"size"`
	}{Provided: f.Provided(), Size: len(f.Data)})
}

// Application - отклик студента вместе с вакансией, на которую он откликнулся.
type Application struct {
	ID        string       `json:"_id"`
	Job       *job.Listing `json:"jobId"`
	AppliedAt time.Time    `json:"appliedAt"`
	Resume    File         `json:"resume"`
}

// Applicant - отклик с точки зрения рекрутера.
type Applicant struct {
	ID          string `json:"_id"`
	Name        string `json:"applicantName"`
	Email       string `json:"applicantEmail"`
	Phone       string `json:"applicantPhone"`
	CoverLetter string `json:"coverLetter"`
	Resume      File   `json:"resume"`
}

// Form is the apply modal.
type Form struct {
	Name        string
	Email       string
	Phone       string
	CoverLetter string
	ResumeName  string
	Resume      []byte
}

// Source - порт к эндпоинтам откликов бэкенда.
type Source interface {
	Apply(ctx context.Context, jobID string, f Form) error
	MyApplications(ctx context.Context, token, email string) ([]Application, error)
	Applicants(ctx context.Context, token, jobID string) ([]Applicant, error)
}
