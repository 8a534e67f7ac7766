package repository

import (
	"context"
	"sync"
	"time"

	"kenkai/internal/models"
)

type MemoryChatRepository struct {
	states sync.Map
	ttl    time.Duration
}

type memoryEntry struct {
	state     *models.ChatState
	expiresAt time.Time
}

func NewMemoryChatRepository(ttl time.Duration) *MemoryChatRepository {
	return &MemoryChatRepository{
		ttl: ttl,
	}
}

func (r *MemoryChatRepository) GetState(ctx context.Context, sessionID string) (*models.ChatState, error) {
	val, ok := r.states.Load(sessionID)
	if !ok {
		return nil, nil
	}
	entry := val.(*memoryEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.states.Delete(sessionID)
		return nil, nil
	}
	return entry.state, nil
}

func (r *MemoryChatRepository) SetState(ctx context.Context, state *models.ChatState) error {
	r.states.Store(state.SessionID, &memoryEntry{
		state:     state,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemoryChatRepository) ClearState(ctx context.Context, sessionID string) error {
	r.states.Delete(sessionID)
	return nil
}
