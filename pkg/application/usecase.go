package application

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/resume"
)

var ErrNotFound = errors.New("application not found")

// UseCase covers the apply modal, the student's applications and the
// recruiter's applicants view.
type UseCase interface {
	Apply(ctx context.Context, jobID string, f Form) error
	Mine(ctx context.Context, c job.Caller) ([]Application, error)
	MineResume(ctx context.Context, c job.Caller, applicationID string) ([]byte, error)
	Applicants(ctx context.Context, c job.Caller, jobID string) ([]Applicant, error)
	ApplicantResume(ctx context.Context, c job.Caller, jobID, applicantID string) (Applicant, error)
	Export(ctx context.Context, c job.Caller, jobID string) (Export, error)
}

type service struct {
	src  Source
	jobs job.UseCase
}

// NewService builds the applications use case. jobs resolves job titles for
// export file names.
func NewService(src Source, jobs job.UseCase) UseCase {
	return &service{src: src, jobs: jobs}
}

func (s *service) Apply(ctx context.Context, jobID string, f Form) error {
	if strings.TrimSpace(jobID) == "" {
		return ErrValidation("job id is required")
	}
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.CoverLetter = strings.TrimSpace(f.CoverLetter)
	switch {
	case f.Name == "":
		return ErrValidation("name is required")
	case f.Phone == "":
		return ErrValidation("phone is required")
	case f.Email == "":
		return ErrValidation("email is required")
	case f.CoverLetter == "":
		return ErrValidation("cover letter is required")
	case len(f.Resume) == 0:
		return ErrValidation("resume is required")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return ErrValidation("email is invalid")
	}
	if err := resume.ValidatePDF(f.ResumeName, f.Resume); err != nil {
		return ErrValidation("resume must be a PDF file")
	}
	return s.src.Apply(ctx, jobID, f)
}

func (s *service) Mine(ctx context.Context, c job.Caller) ([]Application, error) {
	apps, err := s.src.MyApplications(ctx, c.Token, c.Email)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []Application{}
	}
	return apps, nil
}

func (s *service) MineResume(ctx context.Context, c job.Caller, applicationID string) ([]byte, error) {
	apps, err := s.src.MyApplications(ctx, c.Token, c.Email)
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		if a.ID == applicationID && a.Resume.Provided() {
			return a.Resume.Data, nil
		}
	}
	return nil, ErrNotFound
}

func (s *service) Applicants(ctx context.Context, c job.Caller, jobID string) ([]Applicant, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, ErrValidation("job id is required")
	}
	list, err := s.src.Applicants(ctx, c.Token, jobID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Applicant{}
	}
	return list, nil
}

func (s *service) ApplicantResume(ctx context.Context, c job.Caller, jobID, applicantID string) (Applicant, error) {
	list, err := s.Applicants(ctx, c, jobID)
	if err != nil {
		return Applicant{}, err
	}
	for _, a := range list {
		if a.ID == applicantID && a.Resume.Provided() {
			return a, nil
		}
	}
	return Applicant{}, ErrNotFound
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
