package assistant

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
)

// MaxTurns bounds the history kept per session; the greeting is always kept.
const MaxTurns = 40

var ErrEmptyQuery = errors.New("message is required")

type UseCase interface {
	// Send streams the reply to w and records both turns. On failure the
	// apology is written instead and returned as the assistant turn.
	Send(ctx context.Context, session, query string, w io.Writer) (Turn, error)
	History(session string) []Turn
	Reset(session string)
}

type service struct {
	streamer Streamer
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[string][]Turn
}

func NewService(streamer Streamer, logger *log.Logger) UseCase {
	if logger == nil {
		logger = log.Default()
	}
	return &service{streamer: streamer, logger: logger, sessions: make(map[string][]Turn)}
}

func (s *service) history(session string) []Turn {
	h, ok := s.sessions[session]
	if !ok {
		h = []Turn{{Role: RoleAssistant, Content: Greeting}}
		s.sessions[session] = h
	}
	return h
}

func (s *service) History(session string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history(session)
	out := make([]Turn, len(h))
	copy(out, h)
	return out
}

func (s *service) Reset(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
}

func (s *service) Send(ctx context.Context, session, query string, w io.Writer) (Turn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Turn{}, ErrEmptyQuery
	}
	prior := s.History(session)
	s.append(session, Turn{Role: RoleUser, Content: query})

	reply, err := s.stream(ctx, query, prior, w)
	if err != nil {
		s.logger.Printf("[Assistant] chat failed (session %s): %v", session, err)
		turn := Turn{Role: RoleAssistant, Content: Apology}
		sep := ""
		if reply != "" {
			sep = "\n\n"
		}
		_, _ = io.WriteString(w, sep+Apology)
		s.append(session, turn)
		return turn, err
	}
	turn := Turn{Role: RoleAssistant, Content: reply}
	s.append(session, turn)
	return turn, nil
}

func (s *service) stream(ctx context.Context, query string, prior []Turn, w io.Writer) (string, error) {
	body, err := s.streamer.Chat(ctx, query, prior)
	if err != nil {
		return "", err
	}
	defer body.Close()
	var sb strings.Builder
	_, err = io.Copy(io.MultiWriter(w, &sb), body)
	return sb.String(), err
}

func (s *service) append(session string, t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append(s.history(session), t)
	if len(h) > MaxTurns {
		// keep the greeting, drop the oldest exchange
		h = append(h[:1:1], h[len(h)-MaxTurns+1:]...)
	}
	s.sessions[session] = h
}
