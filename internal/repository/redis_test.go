package repository

import (
	"context"
	"testing"
	"time"

	"kenkai/internal/config"
	"kenkai/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisChatRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisChatRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetState", func(t *testing.T) {
		state := &models.ChatState{
			SessionID: "session-1",
			Step:      3,
			Answers:   map[string]string{"budget": "$25k-$50k"},
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.SetState(ctx, state))

		got, err := repo.GetState(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, state.SessionID, got.SessionID)
		assert.Equal(t, state.Step, got.Step)
		assert.Equal(t, "$25k-$50k", got.Get("budget"))
	})

	t.Run("GetNonExistentState", func(t *testing.T) {
		got, err := repo.GetState(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearState", func(t *testing.T) {
		require.NoError(t, repo.SetState(ctx, &models.ChatState{SessionID: "session-2"}))
		require.NoError(t, repo.ClearState(ctx, "session-2"))

		got, _ := repo.GetState(ctx, "session-2")
		assert.Nil(t, got)
	})

	t.Run("TTLExpiry", func(t *testing.T) {
		short := NewRedisChatRepository(client, time.Second)
		require.NoError(t, short.SetState(ctx, &models.ChatState{SessionID: "session-3"}))

		s.FastForward(2 * time.Second)

		got, err := short.GetState(ctx, "session-3")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("NilClient", func(t *testing.T) {
		repo := NewRedisChatRepository(nil, time.Hour)
		_, err := repo.GetState(ctx, "x")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})
}

func TestNewRedisClient(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(config.RedisConfig{Address: s.Addr(), DB: 0, PoolSize: 2})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))
}
