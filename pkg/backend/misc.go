package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/match"
	"github.com/artem13815/jobboard/pkg/news"
)

var (
	_ job.Source         = (*Client)(nil)
	_ application.Source = (*Client)(nil)
	_ news.Feed          = (*Client)(nil)
	_ auth.Backend       = (*Client)(nil)
	_ match.Matcher      = (*Client)(nil)
)

func (c *Client) News(ctx context.Context, query string, category news.Category) ([]news.Article, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("category", string(category))
	var out []news.Article
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/news/news?" + q.Encode()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.SignInResult, error) {
	body, err := jsonBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return auth.SignInResult{}, err
	}
	var out auth.SignInResult
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/auth/signin",
		body:        body,
		contentType: "application/json",
	}, &out)
	return out, err
}

func (c *Client) SignUp(ctx context.Context, email, password string, role auth.Role) error {
	body, err := jsonBody(map[string]string{"email": email, "password": password, "role": string(role)})
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/auth/signup",
		body:        body,
		contentType: "application/json",
	}, nil)
}

func (c *Client) MatchJobs(ctx context.Context, req match.Request) (match.Response, error) {
	body, err := jsonBody(req)
	if err != nil {
		return match.Response{}, err
	}
	var out match.Response
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/job-match/match-jobs",
		body:        body,
		contentType: "application/json",
	}, &out)
	return out, err
}
