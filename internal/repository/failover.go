package repository

import (
	"context"
	"sync/atomic"
	"time"

	"kenkai/internal/domain"
	"kenkai/internal/models"

	"github.com/rs/zerolog"
)

// FailoverChatRepository serves chat state from the primary repository and
// falls back to the secondary when the primary errors, retrying the primary
// once a minute.
type FailoverChatRepository struct {
	primary   domain.ChatStateRepository
	fallback  domain.ChatStateRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverChatRepository(primary, fallback domain.ChatStateRepository, logger *zerolog.Logger) *FailoverChatRepository {
	return &FailoverChatRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverChatRepository) GetState(ctx context.Context, sessionID string) (*models.ChatState, error) {
	if !r.isDown.Load() {
		state, err := r.primary.GetState(ctx, sessionID)
		if err == nil {
			return state, nil
		}
		r.markDown(err)
	} else if r.shouldRetry() {
		state, err := r.primary.GetState(ctx, sessionID)
		if err == nil {
			r.isDown.Store(false)
			return state, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.GetState(ctx, sessionID)
}

func (r *FailoverChatRepository) SetState(ctx context.Context, state *models.ChatState) error {
	if !r.isDown.Load() {
		if err := r.primary.SetState(ctx, state); err == nil {
			return nil
		} else {
			r.markDown(err)
		}
	}
	return r.fallback.SetState(ctx, state)
}

func (r *FailoverChatRepository) ClearState(ctx context.Context, sessionID string) error {
	if !r.isDown.Load() {
		if err := r.primary.ClearState(ctx, sessionID); err == nil {
			_ = r.fallback.ClearState(ctx, sessionID)
			return nil
		} else {
			r.markDown(err)
		}
	}
	return r.fallback.ClearState(ctx, sessionID)
}

func (r *FailoverChatRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary chat repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverChatRepository) shouldRetry() bool {
	return time.Since(time.Unix(0, r.lastCheck.Load())) > time.Minute
}
