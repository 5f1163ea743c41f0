package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/job"
)

type JobHandler struct {
	jobs job.UseCase
}

func NewJobHandler(jobs job.UseCase) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type pageResponse struct {
	Items        []job.Listing `json:"items"`
	TotalMatched int           `json:"totalMatched"`
	PageCount    int           `json:"pageCount"`
	Page         int           `json:"page"`
	HasPrev      bool          `json:"hasPrev"`
	HasNext      bool          `json:"hasNext"`
}

func newPageResponse(p job.Page, page int) pageResponse {
	return pageResponse{
		Items:        p.Items,
		TotalMatched: p.TotalMatched,
		PageCount:    p.PageCount,
		Page:         page,
		HasPrev:      page > 1,
		HasNext:      page < p.PageCount,
	}
}

// parseFacets reads the optional facet parameters of the listing page.
func parseFacets(c *fiber.Ctx) (job.Facets, error) {
	f := job.Facets{
		Location:    strings.TrimSpace(c.Query("location")),
		PostedSince: strings.TrimSpace(c.Query("postedSince")),
	}
	if v := strings.TrimSpace(c.Query("salaryCap")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return job.Facets{}, job.ErrValidation("salaryCap must be a positive number")
		}
		f.SalaryCap = &n
	}
	if v := c.Query("salaryType"); v != "" {
		t, ok := job.ParseSalaryType(v)
		if !ok {
			return job.Facets{}, job.ErrValidation("unknown salaryType")
		}
		f.SalaryType = t
	}
	if v := c.Query("experienceLevel"); v != "" {
		l, ok := job.ParseExperienceLevel(v)
		if !ok {
			return job.Facets{}, job.ErrValidation("unknown experienceLevel")
		}
		f.ExperienceLevel = l
	}
	if v := c.Query("employmentType"); v != "" {
		t, ok := job.ParseEmploymentType(v)
		if !ok {
			return job.Facets{}, job.ErrValidation("unknown employmentType")
		}
		f.EmploymentType = t
	}
	return f, nil
}

// List serves the listing page: title search, sidebar criterion, facets and page.
// @Summary Job listing
// @Tags    jobs
// @Produce json
// @Param   q               query string false "title search"
// @Param   criterion       query string false "sidebar value, matched against any field"
// @Param   location        query string false "location facet"
// @Param   salaryCap       query int    false "max salary facet"
// @Param   salaryType      query string false "salary type facet"
// @Param   postedSince     query string false "posted on or after (YYYY-MM-DD)"
// @Param   experienceLevel query string false "experience level facet"
// @Param   employmentType  query string false "employment type facet"
// @Param   page            query int    false "1-based page"
// @Success 200 {object} pageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	facets, err := parseFacets(c)
	if err != nil {
		return fail(c, err, "")
	}
	page := parsePage(c)
	p, err := h.jobs.Browse(c.UserContext(), job.Query{
		Text:      c.Query("q"),
		Criterion: job.Criterion(c.Query("criterion")),
		Facets:    facets,
		Page:      page,
	})
	if err != nil {
		return fail(c, err, "failed to load jobs")
	}
	return presenter.JSON(c, http.StatusOK, newPageResponse(p, page))
}

// Filters returns the sidebar options.
// @Summary Listing sidebar options
// @Tags    jobs
// @Produce json
// @Success 200 {object} job.Sidebar
// @Router  /jobs/filters [get]
func (h *JobHandler) Filters(c *fiber.Ctx) error {
	sb, err := h.jobs.Sidebar(c.UserContext())
	if err != nil {
		return fail(c, err, "failed to load filters")
	}
	return presenter.JSON(c, http.StatusOK, sb)
}

// Get returns one job.
// @Summary Job details
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id"
// @Success 200 {object} job.Listing
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	l, err := h.jobs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err, "failed to load job")
	}
	return presenter.JSON(c, http.StatusOK, l)
}

// Mine lists the recruiter's own jobs.
// @Summary My jobs
// @Tags    jobs
// @Produce json
// @Param   q    query string false "title search"
// @Param   page query int    false "1-based page"
// @Security BearerAuth
// @Success 200 {object} pageResponse
// @Router  /jobs/mine [get]
func (h *JobHandler) Mine(c *fiber.Ctx) error {
	_, who := caller(c)
	page := parsePage(c)
	p, err := h.jobs.Mine(c.UserContext(), who, c.Query("q"), page)
	if err != nil {
		return fail(c, err, "failed to load your jobs")
	}
	return presenter.JSON(c, http.StatusOK, newPageResponse(p, page))
}

// Create posts a job.
// @Summary Post job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body job.Listing true "job"
// @Security BearerAuth
// @Success 201 {object} job.Listing
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in job.Listing
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	_, who := caller(c)
	out, err := h.jobs.Create(c.UserContext(), who, in)
	if err != nil {
		return fail(c, err, "failed to post job")
	}
	return presenter.JSON(c, http.StatusCreated, out)
}

// Update edits a job.
// @Summary Edit job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id    path string      true "job id"
// @Param   input body job.Listing true "job"
// @Security BearerAuth
// @Success 200 {object} job.Listing
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in job.Listing
	if err := c.BodyParser(&in); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	_, who := caller(c)
	out, err := h.jobs.Update(c.UserContext(), who, c.Params("id"), in)
	if err != nil {
		return fail(c, err, "failed to update job")
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete removes a job.
// @Summary Delete job
// @Tags    jobs
// @Param   id path string true "job id"
// @Security BearerAuth
// @Success 204
// @Router  /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	_, who := caller(c)
	if err := h.jobs.Delete(c.UserContext(), who, c.Params("id")); err != nil {
		return fail(c, err, "failed to delete job")
	}
	return c.SendStatus(http.StatusNoContent)
}
