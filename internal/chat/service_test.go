package chat

import (
	"bytes"
	"context"
	"testing"
	"time"

	"kenkai/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdvisor(t *testing.T) *Advisor {
	t.Helper()
	logger := zerolog.New(zerolog.NewConsoleWriter())
	return NewAdvisor(repository.NewMemoryChatRepository(time.Hour), &logger)
}

func TestAdvisorStart(t *testing.T) {
	advisor := newTestAdvisor(t)

	reply, err := advisor.Start(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, reply.SessionID)
	assert.Equal(t, Script[0].Prompt, reply.Message)
	assert.Equal(t, Script[0].Options, reply.Options)
	assert.False(t, reply.Done)

	t.Run("SessionsAreIndependent", func(t *testing.T) {
		other, err := advisor.Start(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, reply.SessionID, other.SessionID)
	})
}

func TestAdvisorFullFlow(t *testing.T) {
	advisor := newTestAdvisor(t)
	ctx := context.Background()

	start, err := advisor.Start(ctx)
	require.NoError(t, err)
	session := start.SessionID

	answers := []string{
		"SaaS Platform",
		"Increase Revenue",
		"1-3 months",
		"$25k-$50k",
		"React/Next.js",
		"Admin Dashboard",
	}

	for i, answer := range answers {
		reply, err := advisor.Message(ctx, session, answer)
		require.NoError(t, err, "step %d", i)

		if i < len(answers)-1 {
			assert.False(t, reply.Done)
			assert.Equal(t, Script[i+1].Prompt, reply.Message)
		} else {
			assert.True(t, reply.Done)
			assert.Equal(t, donePrompt, reply.Message)
		}
	}

	t.Run("TerminalAfterCompletion", func(t *testing.T) {
		reply, err := advisor.Message(ctx, session, "anything else")
		require.NoError(t, err)
		assert.True(t, reply.Done)
		assert.Equal(t, donePrompt, reply.Message)
	})

	t.Run("SummaryContainsAnswers", func(t *testing.T) {
		data, err := advisor.Summary(ctx, session)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "summary should be a PDF document")
		assert.Greater(t, len(data), 500)
	})
}

func TestAdvisorMessageErrors(t *testing.T) {
	advisor := newTestAdvisor(t)
	ctx := context.Background()

	t.Run("EmptyMessage", func(t *testing.T) {
		start, err := advisor.Start(ctx)
		require.NoError(t, err)

		_, err = advisor.Message(ctx, start.SessionID, "   ")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		_, err := advisor.Message(ctx, "no-such-session", "hello")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestAdvisorSummaryErrors(t *testing.T) {
	advisor := newTestAdvisor(t)
	ctx := context.Background()

	t.Run("UnknownSession", func(t *testing.T) {
		_, err := advisor.Summary(ctx, "no-such-session")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("IncompleteFlow", func(t *testing.T) {
		start, err := advisor.Start(ctx)
		require.NoError(t, err)

		_, err = advisor.Message(ctx, start.SessionID, "SaaS Platform")
		require.NoError(t, err)

		_, err = advisor.Summary(ctx, start.SessionID)
		assert.ErrorIs(t, err, ErrIncomplete)
	})
}

func TestScriptShape(t *testing.T) {
	require.NotEmpty(t, Script)

	seen := make(map[string]bool)
	for _, step := range Script {
		assert.NotEmpty(t, step.Field)
		assert.NotEmpty(t, step.Prompt)
		assert.False(t, seen[step.Field], "duplicate field %s", step.Field)
		seen[step.Field] = true
	}

	// Every scripted field has a heading in the summary.
	titled := make(map[string]bool)
	for _, ft := range fieldTitles {
		titled[ft.Field] = true
	}
	for _, step := range Script {
		assert.True(t, titled[step.Field], "field %s has no summary title", step.Field)
	}
}
