package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// Signup registers a user with the backend.
// @Summary Sign up
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body signupRequest true "signup payload"
// @Success 201 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	err := h.useCase.Signup(c.UserContext(), auth.SignupInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		return fail(c, err, "failed to sign up")
	}
	return presenter.Message(c, http.StatusCreated, "Signup successful! Please log in.")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string         `json:"token,omitempty"`
	Session   auth.Session   `json:"session"`
	Dashboard auth.Dashboard `json:"dashboard"`
	Pages     []string       `json:"pages"`
}

func newSessionResponse(token string, s auth.Session) sessionResponse {
	return sessionResponse{Token: token, Session: s, Dashboard: s.Role.Dashboard(), Pages: s.Role.Pages()}
}

// Login signs in against the backend and opens a session.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, err, "failed to login")
	}
	return presenter.JSON(c, http.StatusOK, newSessionResponse(result.Token, result.Session))
}

// Logout deletes the current session.
// @Summary Logout
// @Tags    auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, _ := jwt.SessionFrom(c)
	if err := h.useCase.Logout(c.UserContext(), sess.ID); err != nil {
		return fail(c, err, "failed to logout")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me returns the current session with the role's dashboard link.
// @Summary Current session
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} sessionResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, _ := jwt.SessionFrom(c)
	return presenter.JSON(c, http.StatusOK, newSessionResponse("", sess))
}
