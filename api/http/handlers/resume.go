package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/resume"
)

type ResumeHandler struct {
	svc resume.AnalysisService
}

func NewResumeHandler(svc resume.AnalysisService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

type analysisFailure struct {
	Message  string          `json:"message"`
	Snapshot resume.Snapshot `json:"snapshot"`
}

// Analyze uploads a résumé PDF to the analysis service, extracts skills from
// the summary and fetches matching jobs.
// @Summary Анализ резюме и подбор вакансий
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Param   file            formData file   true  "résumé (PDF)"
// @Param   job_description formData string false "job description to compare against"
// @Security BearerAuth
// @Success 200 {object} resume.Snapshot
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} analysisFailure
// @Router  /resume/analyze [post]
func (h *ResumeHandler) Analyze(c *fiber.Ctx) error {
	sess, _ := caller(c)
	up := resume.Upload{JobDescription: c.FormValue("job_description")}
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		data, err := readUpload(fh)
		if err != nil {
			return fail(c, err, "failed to read resume")
		}
		up.Filename = fh.Filename
		up.Data = data
	}

	snap, err := h.svc.Analyze(c.UserContext(), sess.ID, up)
	if err != nil {
		var aerr *resume.AnalysisError
		if errors.As(err, &aerr) {
			return presenter.JSON(c, http.StatusBadGateway, analysisFailure{Message: aerr.Message, Snapshot: snap})
		}
		return fail(c, err, "analysis failed")
	}
	return presenter.JSON(c, http.StatusOK, snap)
}

// State returns the current analyzer state of the session.
// @Summary Résumé analyzer state
// @Tags    resume
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resume.Snapshot
// @Router  /resume/state [get]
func (h *ResumeHandler) State(c *fiber.Ctx) error {
	sess, _ := caller(c)
	return presenter.JSON(c, http.StatusOK, h.svc.State(sess.ID))
}
