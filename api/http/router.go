package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/handlers"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
	Resume       *handlers.ResumeHandler
	News         *handlers.NewsHandler
	Assistant    *handlers.AssistantHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/signup", h.Auth.Signup)
	a.Post("/login", h.Auth.Login)
	a.Post("/logout", authMW, h.Auth.Logout)
	a.Get("/me", authMW, h.Auth.Me)

	recruiter := jwt.RequireRole(auth.RoleRecruiter)
	student := jwt.RequireRole(auth.RoleStudent)

	jobs := v1.Group("/jobs")
	jobs.Get("/", h.Jobs.List)
	jobs.Get("/filters", h.Jobs.Filters)
	jobs.Get("/mine", authMW, recruiter, h.Jobs.Mine)
	jobs.Post("/", authMW, recruiter, h.Jobs.Create)
	jobs.Get("/:id", h.Jobs.Get)
	jobs.Put("/:id", authMW, recruiter, h.Jobs.Update)
	jobs.Delete("/:id", authMW, recruiter, h.Jobs.Delete)
	jobs.Post("/:id/apply", authMW, student, h.Applications.Apply)
	jobs.Get("/:id/applicants", authMW, recruiter, h.Applications.Applicants)
	jobs.Get("/:id/applicants/export", authMW, recruiter, h.Applications.Export)
	jobs.Get("/:id/applicants/:applicantId/resume", authMW, recruiter, h.Applications.ApplicantResume)

	apps := v1.Group("/applications", authMW, student)
	apps.Get("/mine", h.Applications.Mine)
	apps.Get("/:id/resume", h.Applications.MineResume)

	rg := v1.Group("/resume", authMW, student)
	rg.Post("/analyze", h.Resume.Analyze)
	rg.Get("/state", h.Resume.State)

	v1.Get("/news", h.News.Search)

	chat := v1.Group("/assistant", authMW)
	chat.Post("/chat", h.Assistant.Chat)
	chat.Get("/history", h.Assistant.History)
	chat.Delete("/history", h.Assistant.Reset)
}
