package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/aiservice"
	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/backend"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/news"
	"github.com/artem13815/jobboard/pkg/resume"
)

// fail maps a domain or transport error onto a status and message. fallback
// is shown for anything unexpected.
func fail(c *fiber.Ctx, err error, fallback string) error {
	var (
		jobVal  job.ErrValidation
		appVal  application.ErrValidation
		authVal auth.ErrValidation
		newsVal news.ErrValidation
		status  *backend.StatusError
		aerr    *resume.AnalysisError
	)
	switch {
	case errors.As(err, &jobVal), errors.As(err, &appVal), errors.As(err, &authVal), errors.As(err, &newsVal):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrPasswordMismatch), errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrInvalidRole):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, resume.ErrFileRequired), errors.Is(err, resume.ErrNotPDF):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, resume.ErrTooLarge):
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, resume.ErrSuperseded):
		return presenter.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, job.ErrNotFound), errors.Is(err, application.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, err.Error())
	case errors.As(err, &aerr):
		return presenter.Error(c, http.StatusBadGateway, aerr.Message)
	case errors.As(err, &status):
		code := status.Code
		if code >= 500 {
			code = http.StatusBadGateway
		}
		return presenter.Error(c, code, status.Message)
	case errors.Is(err, backend.ErrUnavailable), errors.Is(err, aiservice.ErrUnavailable):
		return presenter.Error(c, http.StatusBadGateway, "Connection error. Please try again.")
	}
	return presenter.Error(c, http.StatusInternalServerError, fallback)
}
