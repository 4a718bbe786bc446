package store

import (
	"context"
	"sync"

	"github.com/user/hunter-idle/internal/types"
)

type txKey struct {
	userID     string
	clientTxID string
}

// MemoryStore is an in-memory PlayerStore used in tests. It honors the same
// version compare-and-swap and ledger uniqueness contracts as the SQLite
// store.
type MemoryStore struct {
	mu      sync.Mutex
	players map[string]*types.PlayerState
	ledger  map[txKey]*types.TransactionRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[string]*types.PlayerState),
		ledger:  make(map[txKey]*types.TransactionRecord),
	}
}

// FindPlayer returns a copy of the row for a user, or ErrPlayerNotFound.
func (s *MemoryStore) FindPlayer(ctx context.Context, userID string) (*types.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.players[userID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return state.Clone(), nil
}

// InsertPlayer creates the row for a new user at version 1.
func (s *MemoryStore) InsertPlayer(ctx context.Context, state *types.PlayerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.Version = 1
	s.players[state.UserID] = state.Clone()
	return nil
}

// Commit replaces the row behind a version compare-and-swap, appending the
// ledger record atomically when present.
func (s *MemoryStore) Commit(ctx context.Context, state *types.PlayerState, record *types.TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.players[state.UserID]
	if !ok {
		return ErrPlayerNotFound
	}
	if current.Version != state.Version {
		return ErrVersionConflict
	}

	if record != nil {
		key := txKey{userID: record.UserID, clientTxID: record.ClientTransactionID}
		if _, exists := s.ledger[key]; exists {
			return ErrDuplicateTransaction
		}
		copied := *record
		s.ledger[key] = &copied
	}

	state.Version++
	s.players[state.UserID] = state.Clone()
	return nil
}

// FindTransaction returns the stored ledger record, or nil when absent.
func (s *MemoryStore) FindTransaction(ctx context.Context, userID, clientTxID string) (*types.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.ledger[txKey{userID: userID, clientTxID: clientTxID}]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
