package backend

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/artem13815/jobboard/pkg/application"
)

func (c *Client) Apply(ctx context.Context, jobID string, f application.Form) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"coverLetter", f.CoverLetter},
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return err
		}
	}
	name := f.ResumeName
	if name == "" {
		name = "resume.pdf"
	}
	fw, err := mw.CreateFormFile("resume", name)
	if err != nil {
		return err
	}
	if _, err := fw.Write(f.Resume); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/jobApply/apply/" + url.PathEscape(jobID),
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, nil)
}

func (c *Client) MyApplications(ctx context.Context, token, email string) ([]application.Application, error) {
	var out struct {
		Applications []application.Application `json:"applications"`
	}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/jobApply/my-applications/" + url.PathEscape(email),
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Applications, nil
}

func (c *Client) Applicants(ctx context.Context, token, jobID string) ([]application.Applicant, error) {
	var out []application.Applicant
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/jobApply/applicants/" + url.PathEscape(jobID),
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
