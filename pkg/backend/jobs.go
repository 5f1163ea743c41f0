package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/artem13815/jobboard/pkg/job"
)

func (c *Client) AllJobs(ctx context.Context) ([]job.Listing, error) {
	var out []job.Listing
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/jobs/all-jobs"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyJobs(ctx context.Context, token, email string) ([]job.Listing, error) {
	var out []job.Listing
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/jobs/myJobs/" + url.PathEscape(email),
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PostJob(ctx context.Context, token string, l job.Listing) (job.Listing, error) {
	body, err := jsonBody(l)
	if err != nil {
		return job.Listing{}, err
	}
	var raw json.RawMessage
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/jobs/post-job",
		token:       token,
		body:        body,
		contentType: "application/json",
	}, &raw)
	if err != nil {
		return job.Listing{}, err
	}
	return listingFrom(raw, l), nil
}

func (c *Client) EditJob(ctx context.Context, token, id string, l job.Listing) (job.Listing, error) {
	body, err := jsonBody(l)
	if err != nil {
		return job.Listing{}, err
	}
	var raw json.RawMessage
	err = c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/api/jobs/edit-job/" + url.PathEscape(id),
		token:       token,
		body:        body,
		contentType: "application/json",
	}, &raw)
	if err != nil {
		return job.Listing{}, err
	}
	return listingFrom(raw, l), nil
}

func (c *Client) DeleteJob(ctx context.Context, token, id string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/jobs/delete-job/" + url.PathEscape(id),
		token:  token,
	}, nil)
}

// listingFrom reads the job from a mutation response. The backend answers
// with the job itself or wraps it in "job"/"data"; anything else keeps the
// submitted listing.
func listingFrom(raw json.RawMessage, submitted job.Listing) job.Listing {
	var direct job.Listing
	if json.Unmarshal(raw, &direct) == nil && direct.ID != "" {
		return direct
	}
	var wrapped struct {
		Job  *job.Listing `json:"job"`
		Data *job.Listing `json:"data"`
	}
	if json.Unmarshal(raw, &wrapped) == nil {
		if wrapped.Job != nil && wrapped.Job.ID != "" {
			return *wrapped.Job
		}
		if wrapped.Data != nil && wrapped.Data.ID != "" {
			return *wrapped.Data
		}
	}
	return submitted
}
