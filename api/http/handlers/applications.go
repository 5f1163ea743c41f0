package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/application"
)

type ApplicationHandler struct {
	apps application.UseCase
}

func NewApplicationHandler(apps application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

// Apply submits the apply modal. The email comes from the session.
// @Summary Apply to a job
// @Tags    applications
// @Accept  multipart/form-data
// @Produce json
// @Param   id          path     string true  "job id"
// @Param   name        formData string true  "applicant name"
// @Param   phone       formData string true  "phone"
// @Param   coverLetter formData string true "cover letter"
// @Param   resume      formData file   true  "résumé (PDF)"
// @Security BearerAuth
// @Success 201 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	sess, _ := caller(c)
	form := application.Form{
		Name:        c.FormValue("name"),
		Email:       sess.Email,
		Phone:       c.FormValue("phone"),
		CoverLetter: c.FormValue("coverLetter"),
	}
	if fh, err := c.FormFile("resume"); err == nil && fh != nil {
		data, err := readUpload(fh)
		if err != nil {
			return fail(c, err, "failed to read resume")
		}
		form.ResumeName = fh.Filename
		form.Resume = data
	}
	if err := h.apps.Apply(c.UserContext(), c.Params("id"), form); err != nil {
		return fail(c, err, "failed to submit application")
	}
	return presenter.Message(c, http.StatusCreated, "Application submitted successfully!")
}

// Mine lists the student's applications.
// @Summary My applications
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} application.Application
// @Router  /applications/mine [get]
func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	_, who := caller(c)
	apps, err := h.apps.Mine(c.UserContext(), who)
	if err != nil {
		return fail(c, err, "failed to load applications")
	}
	return presenter.JSON(c, http.StatusOK, apps)
}

// MineResume downloads the résumé attached to one of the student's applications.
// @Summary Download my application résumé
// @Tags    applications
// @Produce application/pdf
// @Param   id path string true "application id"
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id}/resume [get]
func (h *ApplicationHandler) MineResume(c *fiber.Ctx) error {
	_, who := caller(c)
	data, err := h.apps.MineResume(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return fail(c, err, "failed to load resume")
	}
	return sendAttachment(c, "application/pdf", "resume.pdf", data)
}

// Applicants lists the applicants of a recruiter's job.
// @Summary Job applicants
// @Tags    applications
// @Produce json
// @Param   id path string true "job id"
// @Security BearerAuth
// @Success 200 {array} application.Applicant
// @Router  /jobs/{id}/applicants [get]
func (h *ApplicationHandler) Applicants(c *fiber.Ctx) error {
	_, who := caller(c)
	list, err := h.apps.Applicants(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return fail(c, err, "failed to load applicants")
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// ApplicantResume downloads one applicant's résumé.
// @Summary Download applicant résumé
// @Tags    applications
// @Produce application/pdf
// @Param   id          path string true "job id"
// @Param   applicantId path string true "applicant id"
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/applicants/{applicantId}/resume [get]
func (h *ApplicationHandler) ApplicantResume(c *fiber.Ctx) error {
	_, who := caller(c)
	a, err := h.apps.ApplicantResume(c.UserContext(), who, c.Params("id"), c.Params("applicantId"))
	if err != nil {
		return fail(c, err, "failed to load resume")
	}
	return sendAttachment(c, "application/pdf", a.Name+"_resume.pdf", a.Resume.Data)
}

// Export downloads the applicants as an XLSX workbook.
// @Summary Export applicants
// @Tags    applications
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   id path string true "job id"
// @Security BearerAuth
// @Success 200 {file} binary
// @Router  /jobs/{id}/applicants/export [get]
func (h *ApplicationHandler) Export(c *fiber.Ctx) error {
	_, who := caller(c)
	exp, err := h.apps.Export(c.UserContext(), who, c.Params("id"))
	if err != nil {
		return fail(c, err, "failed to export applicants")
	}
	return sendAttachment(c, exp.ContentType(), exp.Filename, exp.Data)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(http.StatusOK).Send(data)
}
