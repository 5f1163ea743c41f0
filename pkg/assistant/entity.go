package assistant

import (
	"context"
	"io"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn - одна реплика диалога.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Greeting opens every conversation and is sent as part of the history.
const Greeting = "Hi there! 👋\n\nI am **STARTX AI**, your intelligent assistant. How can I help you today?"

// Apology replaces the reply when the assistant service fails.
const Apology = "Sorry, there was an error processing your request. Please try again."

// Streamer - порт чат-эндпоинта: отдаёт ответ потоком простого текста.
type Streamer interface {
	Chat(ctx context.Context, query string, history []Turn) (io.ReadCloser, error)
}
