package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/artem13815/jobboard/api/http"
	"github.com/artem13815/jobboard/api/http/handlers"
	"github.com/artem13815/jobboard/pkg/aiservice"
	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/assistant"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/backend"
	"github.com/artem13815/jobboard/pkg/cache"
	"github.com/artem13815/jobboard/pkg/health"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/match"
	"github.com/artem13815/jobboard/pkg/news"
	"github.com/artem13815/jobboard/pkg/repository/memory"
	"github.com/artem13815/jobboard/pkg/resume"
	"github.com/artem13815/jobboard/pkg/resume/resumetest"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

const (
	testSecret = "test-secret"
	testIssuer = "jobboard-test"
)

var listings = []job.Listing{
	{ID: "1", JobTitle: "Go Developer", CompanyName: "Acme", JobLocation: "London", MaxPrice: "80", PostingDate: "2026-01-01"},
	{ID: "2", JobTitle: "Frontend Developer", CompanyName: "Initech", JobLocation: "Boston", MaxPrice: "50", PostingDate: "2026-01-01"},
	{ID: "3", JobTitle: "Data Engineer", CompanyName: "Acme", JobLocation: "london", MaxPrice: "100", PostingDate: "2026-01-01"},
}

// fakeBackend stands in for the job-board backend.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/jobs/all-jobs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(listings)
	})
	mux.HandleFunc("/api/jobs/post-job", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer backend-token-recruiter", r.Header.Get("Authorization"))
		var l job.Listing
		_ = json.NewDecoder(r.Body).Decode(&l)
		l.ID = "new"
		_ = json.NewEncoder(w).Encode(l)
	})
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "password1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
			return
		}
		role := "student"
		if strings.HasPrefix(in["email"], "hr") {
			role = "recruiter"
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token": "backend-token-" + role, "email": in["email"], "role": role, "expiresIn": "1h",
		})
	})
	mux.HandleFunc("/api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"User already exists"}`))
	})
	mux.HandleFunc("/api/jobApply/applicants/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"a1","applicantName":"Ann","applicantEmail":"ann@x.io","applicantPhone":"1"}]`))
	})
	mux.HandleFunc("/api/jobApply/apply/1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "student@x.io", r.FormValue("email"))
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/api/job-match/match-jobs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs":[{"_id":"1","jobTitle":"Go Developer","matchPercentage":80}],"summary":{"total":1,"excellent":1}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// fakeAI stands in for the résumé analysis and chat service.
func fakeAI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/upload-resume", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"summary":{"overall_score":80,"description":"Experienced in Golang and PostgreSQL"}}`))
	})
	mux.HandleFunc("/genie", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Hello from the assistant"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	quiet := log.New(io.Discard, "", 0)
	be := backend.New(fakeBackend(t).URL, time.Second)
	ai := aiservice.New(fakeAI(t).URL, "secret", 0, time.Second)
	noCache := cache.NewRedis("", time.Minute, quiet)

	jobs := job.NewService(be, noCache, 2, quiet)
	chat := assistant.NewService(ai, quiet)
	analysis := resume.NewAnalysisService(ai, match.NewService(be, match.MinMatchPercentage, quiet), resume.NewTracker(), quiet)
	authUC := auth.NewAuthService(be, memory.NewSessionRepository(), jwt.NewGenerator(testSecret, testIssuer), time.Hour, analysis.Forget, chat.Reset)

	app := fiber.New()
	apihttp.Register(app, apihttp.Handlers{
		Auth:         handlers.NewAuthHandler(authUC),
		Health:       handlers.NewHealthHandler(health.NewService()),
		Jobs:         handlers.NewJobHandler(jobs),
		Applications: handlers.NewApplicationHandler(application.NewService(be, jobs)),
		Resume:       handlers.NewResumeHandler(analysis),
		News:         handlers.NewNewsHandler(news.NewService(be, noCache, 9, quiet)),
		Assistant:    handlers.NewAssistantHandler(chat),
	}, jwt.NewAuthMiddleware(testSecret, testIssuer, authUC))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListingPage(t *testing.T) {
	app := newApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/jobs?criterion=London", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Items        []job.Listing `json:"items"`
		TotalMatched int           `json:"totalMatched"`
		PageCount    int           `json:"pageCount"`
		HasNext      bool          `json:"hasNext"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 2, page.TotalMatched)
	assert.Equal(t, 1, page.PageCount)
	assert.False(t, page.HasNext)
	assert.Len(t, page.Items, 2)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/jobs?page=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 3, page.TotalMatched)
	assert.Equal(t, 2, page.PageCount)
	assert.False(t, page.HasNext)
	assert.Len(t, page.Items, 1)
}

func TestListingFacetsAndSearch(t *testing.T) {
	app := newApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/jobs?q=developer&location=london", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Items []job.Listing `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].ID)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/jobs?salaryType=weekly", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJobNotFound(t *testing.T) {
	app := newApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/jobs/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSignupSurfacesBackendMessage(t *testing.T) {
	app := newApp(t)
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "a@x.io", "password": "password1", "confirmPassword": "password1", "role": "student",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "User already exists")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "a@x.io", "password": "password1", "confirmPassword": "password2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginFailure(t *testing.T) {
	app := newApp(t)
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "a@x.io", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid email or password")
}

func TestSessionLifecycle(t *testing.T) {
	app := newApp(t)
	token := login(t, app, "hr@x.io")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		Session   auth.Session   `json:"session"`
		Dashboard auth.Dashboard `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, auth.RoleRecruiter, me.Session.Role)
	assert.Equal(t, "/my-job", me.Dashboard.Path)
	assert.NotContains(t, string(body), "backend-token")

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGates(t *testing.T) {
	app := newApp(t)
	student := login(t, app, "student@x.io")
	recruiter := login(t, app, "hr@x.io")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/jobs", student, map[string]string{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/resume/state", recruiter, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/jobs/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostJob(t *testing.T) {
	app := newApp(t)
	token := login(t, app, "hr@x.io")

	valid := map[string]any{
		"jobTitle":        "Platform Engineer",
		"companyName":     "Acme",
		"companyLogo":     "https://acme.io/logo.png",
		"minPrice":        "30",
		"maxPrice":        50,
		"salaryType":      "yearly",
		"jobLocation":     "Madrid",
		"employmentType":  "Full-time",
		"experienceLevel": "Internship",
		"postingDate":     "2026-02-01",
		"description":     "Build and run the internal platform.",
		"skills":          []string{"Go", "Kubernetes"},
	}
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/jobs", token, valid)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created job.Listing
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, "hr@x.io", created.PostedBy)
	assert.Equal(t, job.SalaryYearly, created.SalaryType)

	valid["companyLogo"] = "ftp://acme.io/logo.bmp"
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/jobs", token, valid)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "company logo")
}

func TestExportApplicants(t *testing.T) {
	app := newApp(t)
	token := login(t, app, "hr@x.io")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/1/applicants/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, application.Export{}.ContentType(), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Go Developer_Acme_Applicants.xlsx")
}

func multipartBody(t *testing.T, fileField, filename string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if data != nil {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestApply(t *testing.T) {
	app := newApp(t)
	token := login(t, app, "student@x.io")

	body, ct := multipartBody(t, "resume", "cv.pdf", resumetest.MinimalPDF(), map[string]string{"name": "Stu", "phone": "555", "coverLetter": "Hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/1/apply", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body, ct = multipartBody(t, "resume", "cv.txt", []byte("not a pdf"), map[string]string{"name": "Stu", "phone": "555", "coverLetter": "Hello"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/jobs/1/apply", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, ct = multipartBody(t, "resume", "cv.pdf", resumetest.MinimalPDF(), map[string]string{"name": "Stu", "phone": "555"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/jobs/1/apply", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResumeAnalyze(t *testing.T) {
	app := newApp(t)
	token := login(t, app, "student@x.io")

	body, ct := multipartBody(t, "file", "cv.pdf", resumetest.MinimalPDF(), map[string]string{"job_description": "Go backend"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var snap resume.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, resume.StateMatchesShown, snap.State)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, snap.Skills.Slice())
	require.NotNil(t, snap.Matches)
	assert.Len(t, snap.Matches.Jobs, 1)

	resp2, data2 := doJSON(t, app, http.MethodGet, "/api/v1/resume/state", token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, string(data2), string(resume.StateMatchesShown))
}

func TestResumeAnalyzeRequiresFile(t *testing.T) {
	app := newApp(t)
	token := login(t, app, "student@x.io")

	body, ct := multipartBody(t, "file", "", nil, map[string]string{"job_description": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewsRejectsUnknownCategory(t *testing.T) {
	app := newApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/news?category=weather", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAssistantChat(t *testing.T) {
	app := newApp(t)
	token := login(t, app, "student@x.io")

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/assistant/chat", token, map[string]string{"message": "hi"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello from the assistant", string(body))

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/assistant/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var turns []assistant.Turn
	require.NoError(t, json.Unmarshal(body, &turns))
	require.Len(t, turns, 3)
	assert.Equal(t, assistant.Greeting, turns[0].Content)
	assert.Equal(t, "hi", turns[1].Content)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/assistant/chat", token, map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
