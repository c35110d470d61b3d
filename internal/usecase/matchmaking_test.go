package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchQueue_Request(t *testing.T) {
	t.Run("First requester waits", func(t *testing.T) {
		queue := NewMatchQueue()

		opponent, outcome := queue.Request("alice")

		assert.Equal(t, MatchWaiting, outcome)
		assert.Empty(t, opponent)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Second requester is paired FIFO", func(t *testing.T) {
		queue := NewMatchQueue()
		queue.Request("alice")

		opponent, outcome := queue.Request("bob")

		require.Equal(t, MatchPaired, outcome)
		assert.Equal(t, "alice", opponent)
		assert.Equal(t, 0, queue.Len())
	})

	t.Run("Duplicate request does not double-enqueue or self-pair", func(t *testing.T) {
		queue := NewMatchQueue()
		queue.Request("alice")

		// When: the same player asks again
		opponent, outcome := queue.Request("alice")

		// Then: they stay queued exactly once and are not paired with themselves
		assert.Equal(t, MatchAlreadyWaiting, outcome)
		assert.Empty(t, opponent)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Remove evicts a waiting player", func(t *testing.T) {
		queue := NewMatchQueue()
		queue.Request("alice")

		queue.Remove("alice")

		assert.Equal(t, 0, queue.Len())

		// Then: the next requester waits instead of pairing with a ghost
		_, outcome := queue.Request("bob")
		assert.Equal(t, MatchWaiting, outcome)
	})

	t.Run("Racing requests never lose or duplicate a player", func(t *testing.T) {
		queue := NewMatchQueue()

		const n = 50 // even number of players, everyone should pair up

		var wg sync.WaitGroup
		var mu sync.Mutex
		paired := 0

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(id byte) {
				defer wg.Done()
				_, outcome := queue.Request(string([]byte{'a' + id%26, '0' + id/26}))
				if outcome == MatchPaired {
					mu.Lock()
					paired++
					mu.Unlock()
				}
			}(byte(i))
		}
		wg.Wait()

		// Then: every pairing consumed exactly one waiter
		assert.Equal(t, n/2, paired)
		assert.Equal(t, 0, queue.Len())
	})
}
