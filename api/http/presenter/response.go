package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse carries the user-visible message and, when the requestid
// middleware runs, the id to quote in a support request.
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// MessageResponse is a bare confirmation ("Application submitted successfully!").
type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	rid, _ := c.Locals("requestid").(string)
	return JSON(c, status, ErrorResponse{Message: message, RequestID: rid})
}

func Message(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, MessageResponse{Message: message})
}
