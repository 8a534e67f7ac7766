package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"kenkai/internal/domain"
	"kenkai/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrIncomplete      = errors.New("chat flow is not complete")
	ErrEmptyMessage    = errors.New("message is required")
)

// Reply is one advisor turn returned to the client.
type Reply struct {
	SessionID string   `json:"sessionId"`
	Message   string   `json:"message"`
	Options   []string `json:"options,omitempty"`
	Done      bool     `json:"done"`
}

// Advisor runs the scripted scoping conversation. All state lives in the
// repository; the advisor itself is stateless across requests.
type Advisor struct {
	states domain.ChatStateRepository
	logger *zerolog.Logger
}

func NewAdvisor(states domain.ChatStateRepository, logger *zerolog.Logger) *Advisor {
	return &Advisor{states: states, logger: logger}
}

// Start creates a session and returns the first question.
func (a *Advisor) Start(ctx context.Context) (*Reply, error) {
	now := time.Now().UTC()
	state := &models.ChatState{
		SessionID: uuid.NewString(),
		Step:      0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.states.SetState(ctx, state); err != nil {
		return nil, err
	}

	first := Script[0]
	return &Reply{
		SessionID: state.SessionID,
		Message:   first.Prompt,
		Options:   first.Options,
	}, nil
}

// Message records the answer for the current step and advances the counter.
// Past the final step the flow is terminal and replies with the completion
// prompt.
func (a *Advisor) Message(ctx context.Context, sessionID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	state, err := a.states.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}

	if state.Step >= len(Script) {
		return &Reply{SessionID: sessionID, Message: donePrompt, Done: true}, nil
	}

	state.Set(Script[state.Step].Field, message)
	state.Step++
	state.UpdatedAt = time.Now().UTC()
	if err := a.states.SetState(ctx, state); err != nil {
		return nil, err
	}

	if state.Step >= len(Script) {
		return &Reply{SessionID: sessionID, Message: donePrompt, Done: true}, nil
	}

	next := Script[state.Step]
	return &Reply{
		SessionID: sessionID,
		Message:   next.Prompt,
		Options:   next.Options,
	}, nil
}

// Summary renders the scope document for a completed session.
func (a *Advisor) Summary(ctx context.Context, sessionID string) ([]byte, error) {
	state, err := a.states.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}
	if state.Step < len(Script) {
		return nil, ErrIncomplete
	}

	return renderSummary(state)
}
