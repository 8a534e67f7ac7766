package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"kenkai/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentBookingSameSlot(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			results <- db.CreateBooking(ctx, testBooking("2026-09-15", "2:00 PM"))
		}()
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		case errors.Is(err, domain.ErrSlotTaken):
			conflictCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// The unique constraint lets exactly one insert through.
	assert.Equal(t, 1, successCount, "exactly one booking should win the slot")
	assert.Equal(t, numGoroutines-1, conflictCount)

	taken, err := db.BookedSlots(ctx, "2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"2:00 PM"}, taken)
}
