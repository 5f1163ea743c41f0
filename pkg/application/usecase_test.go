package application

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/resume/resumetest"
)

type fakeSource struct {
	applied    map[string]Form
	apps       []Application
	applicants []Applicant
	err        error
}

func (f *fakeSource) Apply(ctx context.Context, jobID string, form Form) error {
	if f.applied == nil {
		f.applied = map[string]Form{}
	}
	f.applied[jobID] = form
	return f.err
}

func (f *fakeSource) MyApplications(ctx context.Context, token, email string) ([]Application, error) {
	return f.apps, f.err
}

func (f *fakeSource) Applicants(ctx context.Context, token, jobID string) ([]Applicant, error) {
	return f.applicants, f.err
}

// jobsStub implements job.UseCase; only Get is used by exports.
type jobsStub struct {
	job.UseCase
	listing job.Listing
	err     error
}

func (j jobsStub) Get(ctx context.Context, id string) (job.Listing, error) {
	return j.listing, j.err
}

func validForm() Form {
	return Form{
		Name:        " Ada ",
		Email:       "ada@example.com",
		Phone:       "+44 20 0000",
		CoverLetter: "I would like to join.",
		ResumeName:  "ada.pdf",
		Resume:      resumetest.MinimalPDF(),
	}
}

func TestApplyValidation(t *testing.T) {
	src := &fakeSource{}
	uc := NewService(src, nil)
	ctx := context.Background()

	cases := map[string]func(f *Form){
		"no name":         func(f *Form) { f.Name = "" },
		"no phone":        func(f *Form) { f.Phone = " " },
		"no cover letter": func(f *Form) { f.CoverLetter = "\n " },
		"no resume":       func(f *Form) { f.Resume = nil },
		"bad email":       func(f *Form) { f.Email = "not-an-email" },
		"not a pdf":       func(f *Form) { f.Resume = []byte("hello") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := validForm()
			mutate(&f)
			var verr ErrValidation
			assert.ErrorAs(t, uc.Apply(ctx, "job-1", f), &verr)
		})
	}
	assert.Empty(t, src.applied)

	require.NoError(t, uc.Apply(ctx, "job-1", validForm()))
	assert.Equal(t, "Ada", src.applied["job-1"].Name)

	assert.Error(t, uc.Apply(ctx, "", validForm()))
}

func TestMineNeverNil(t *testing.T) {
	uc := NewService(&fakeSource{}, nil)
	apps, err := uc.Mine(context.Background(), job.Caller{Email: "a@b.c"})
	require.NoError(t, err)
	assert.NotNil(t, apps)
}

func TestApplicationDecodesBackendShape(t *testing.T) {
	raw := `{"_id":"a1","appliedAt":"2024-06-01T10:00:00Z",
		"jobId":{"_id":"j1","jobTitle":"Dev","companyName":"Acme"},
		"resume":{"type":"Buffer","data":[37,80,68,70]}}`
	var a Application
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	require.NotNil(t, a.Job)
	assert.Equal(t, "Dev", a.Job.JobTitle)
	assert.Equal(t, []byte("%PDF"), a.Resume.Data)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"resume":{"provided":true,"size":4}`)
}

func TestMineResume(t *testing.T) {
	src := &fakeSource{apps: []Application{
		{ID: "a1", Resume: File{Data: []byte("pdf")}},
		{ID: "a2"},
	}}
	uc := NewService(src, nil)
	ctx := context.Background()

	data, err := uc.MineResume(ctx, job.Caller{}, "a1")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), data)

	_, err = uc.MineResume(ctx, job.Caller{}, "a2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportWorkbook(t *testing.T) {
	src := &fakeSource{applicants: []Applicant{
		{ID: "1", Name: "Ada", Email: "ada@example.com", Phone: "1", CoverLetter: "Hello", Resume: File{Data: []byte{1}}},
		{ID: "2", Name: "Bob", Email: "bob@example.com", Phone: "2"},
	}}
	uc := NewService(src, jobsStub{listing: job.Listing{JobTitle: "Go Dev", CompanyName: "Acme"}})

	exp, err := uc.Export(context.Background(), job.Caller{Token: "t"}, "j1")
	require.NoError(t, err)
	assert.Equal(t, "Go Dev_Acme_Applicants.xlsx", exp.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(exp.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applicants")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Email", "Phone", "Cover_Letter", "Resume"}, rows[0])
	assert.Equal(t, []string{"Ada", "ada@example.com", "1", "Hello", "Provided"}, rows[1])
	assert.Equal(t, []string{"Bob", "bob@example.com", "2", "Not Provided", "Not Provided"}, rows[2])
}

func TestExportUnknownJobUsesPlaceholders(t *testing.T) {
	uc := NewService(&fakeSource{}, jobsStub{err: job.ErrNotFound})
	exp, err := uc.Export(context.Background(), job.Caller{}, "j1")
	require.NoError(t, err)
	assert.Equal(t, "Job_Company_Applicants.xlsx", exp.Filename)
	assert.NotEmpty(t, exp.Data)
}

func TestExportFilenameStripsSeparators(t *testing.T) {
	assert.Equal(t, "UI-UX Designer_Acme_Applicants.xlsx", ExportFilename("UI/UX Designer", "Acme"))
}
