package handlers

import (
	"bufio"
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/assistant"
)

type AssistantHandler struct {
	chat assistant.UseCase
}

func NewAssistantHandler(chat assistant.UseCase) *AssistantHandler {
	return &AssistantHandler{chat: chat}
}

type chatRequest struct {
	Message string `json:"message"`
}

// flushWriter pushes every chunk to the client as soon as it is written.
type flushWriter struct{ w *bufio.Writer }

func (f flushWriter) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, f.w.Flush()
}

// Chat streams the assistant reply as plain text.
// @Summary Chat assistant
// @Tags    assistant
// @Accept  json
// @Produce plain
// @Param   input body chatRequest true "user message"
// @Security BearerAuth
// @Success 200 {string} string "streamed reply"
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /assistant/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Message) == "" {
		return presenter.Error(c, http.StatusBadRequest, assistant.ErrEmptyQuery.Error())
	}
	sess, _ := caller(c)

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Status(http.StatusOK)
	// The stream outlives the handler, so it cannot use the request context.
	// A reply has no deadline; a dropped client fails the next flush.
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		// Failures are logged by the use case and answered with the apology.
		_, _ = h.chat.Send(ctx, sess.ID, req.Message, flushWriter{w: w})
	})
	return nil
}

// History returns the conversation so far, greeting first.
// @Summary Chat history
// @Tags    assistant
// @Produce json
// @Security BearerAuth
// @Success 200 {array} assistant.Turn
// @Router  /assistant/history [get]
func (h *AssistantHandler) History(c *fiber.Ctx) error {
	sess, _ := caller(c)
	return presenter.JSON(c, http.StatusOK, h.chat.History(sess.ID))
}

// Reset starts a new conversation.
// @Summary Reset chat
// @Tags    assistant
// @Security BearerAuth
// @Success 204
// @Router  /assistant/history [delete]
func (h *AssistantHandler) Reset(c *fiber.Ctx) error {
	sess, _ := caller(c)
	h.chat.Reset(sess.ID)
	return c.SendStatus(http.StatusNoContent)
}
