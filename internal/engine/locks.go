package engine

import "sync"

// playerLocks serializes mutating actions per player. The durable store
// additionally compare-and-swaps on the row version, so a second process
// writing the same row is detected rather than silently lost.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the per-player mutex and returns its release function.
func (l *playerLocks) lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
