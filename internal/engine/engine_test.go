package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/store"
	"github.com/user/hunter-idle/internal/types"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeClock is a manually-advanced wall clock for deterministic accrual.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (*Processor, *store.MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: baseTime}
	st := store.NewMemoryStore()
	proc := NewProcessor(st, content.DefaultCatalog(), zap.NewNop())
	proc.SetClock(clock.Now)
	return proc, st, clock
}

// createPlayer provisions a fresh row through the public state endpoint.
func createPlayer(t *testing.T, proc *Processor, userID string) *types.StateSnapshot {
	t.Helper()
	snap, err := proc.GetState(context.Background(), userID)
	require.NoError(t, err)
	return snap
}

// seedPlayer mutates the stored row directly, bypassing the engine. Seeded
// values are not clamped, so tests can exceed caps when they need to.
func seedPlayer(t *testing.T, st *store.MemoryStore, userID string, mutate func(state *types.PlayerState)) {
	t.Helper()
	ctx := context.Background()
	state, err := st.FindPlayer(ctx, userID)
	require.NoError(t, err)
	mutate(state)
	require.NoError(t, st.Commit(ctx, state, nil))
}

func loadPlayer(t *testing.T, st *store.MemoryStore, userID string) *types.PlayerState {
	t.Helper()
	state, err := st.FindPlayer(context.Background(), userID)
	require.NoError(t, err)
	return state
}
