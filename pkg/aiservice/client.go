// Package aiservice is the client of the external AI service: résumé
// analysis and the streaming chat assistant.
package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/artem13815/jobboard/pkg/assistant"
	"github.com/artem13815/jobboard/pkg/resume"
)

// ErrUnavailable wraps transport failures.
var ErrUnavailable = errors.New("ai service unavailable")

// Client talks to the AI service. Every call waits on a shared limiter so a
// burst of uploads cannot flood the service.
type Client struct {
	BaseURL    string
	AuthSecret string
	limiter    *rate.Limiter
	httpDo     *http.Client
	// streamDo has no overall deadline: only the response headers are
	// bounded, the chat body streams for as long as the service writes.
	streamDo *http.Client
}

// New builds the client. timeout bounds a whole analysis request and the
// wait for chat response headers.
func New(baseURL, authSecret string, perSecond float64, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	limit := rate.Inf
	burst := 1
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = max(1, int(perSecond))
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AuthSecret: authSecret,
		limiter:    rate.NewLimiter(limit, burst),
		httpDo:     &http.Client{Timeout: timeout},
		streamDo:   &http.Client{Transport: transport},
	}
}

func (c *Client) post(ctx context.Context, hc *http.Client, path, contentType string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", contentType)
	// The service expects the raw secret, not a bearer token.
	if c.AuthSecret != "" {
		httpReq.Header.Set("Authorization", c.AuthSecret)
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

type uploadResponse struct {
	Summary *resume.Analysis `json:"summary"`
	Error   string           `json:"error"`
}

// UploadResume sends the PDF as multipart field "file" with an optional
// "job_description" and returns the summary.
func (c *Client) UploadResume(ctx context.Context, up resume.Upload) (resume.Analysis, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	name := up.Filename
	if name == "" {
		name = "resume.pdf"
	}
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return resume.Analysis{}, err
	}
	if _, err := fw.Write(up.Data); err != nil {
		return resume.Analysis{}, err
	}
	if jd := strings.TrimSpace(up.JobDescription); jd != "" {
		if err := mw.WriteField("job_description", jd); err != nil {
			return resume.Analysis{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return resume.Analysis{}, err
	}

	resp, err := c.post(ctx, c.httpDo, "/upload-resume", mw.FormDataContentType(), &buf)
	if err != nil {
		return resume.Analysis{}, err
	}
	defer resp.Body.Close()

	var out uploadResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Error
		if msg == "" {
			msg = "Analysis failed."
		}
		return resume.Analysis{}, &resume.AnalysisError{Message: msg}
	}
	if decodeErr != nil {
		return resume.Analysis{}, fmt.Errorf("decode analysis: %w", decodeErr)
	}
	if out.Summary == nil {
		return resume.Analysis{}, errors.New("analysis response has no summary")
	}
	return *out.Summary, nil
}

type chatRequest struct {
	Query       string           `json:"query"`
	ChatHistory []assistant.Turn `json:"chat_history"`
}

// Chat posts the query with the prior turns to /genie and returns the reply
// body, a plain-text stream. The caller closes it.
func (c *Client) Chat(ctx context.Context, query string, history []assistant.Turn) (io.ReadCloser, error) {
	if history == nil {
		history = []assistant.Turn{}
	}
	data, err := json.Marshal(chatRequest{Query: query, ChatHistory: history})
	if err != nil {
		return nil, err
	}
	resp, err := c.post(ctx, c.streamDo, "/genie", "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, fmt.Errorf("ai service http %d", resp.StatusCode)
	}
	return resp.Body, nil
}

var (
	_ resume.Analyzer    = (*Client)(nil)
	_ assistant.Streamer = (*Client)(nil)
)
