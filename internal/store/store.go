// Package store provides the durable per-user row store and the append-only
// transaction ledger. The engine receives a PlayerStore by injection; there
// is no package-level database handle.
package store

import (
	"context"
	"errors"

	"github.com/user/hunter-idle/internal/types"
)

var (
	// ErrPlayerNotFound is returned when no row exists for a user id.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrVersionConflict is returned when a commit loses a compare-and-swap
	// on the row version, meaning someone else wrote the row first.
	ErrVersionConflict = errors.New("player row version conflict")

	// ErrDuplicateTransaction is returned when a ledger insert collides with
	// an existing (user, transaction id) pair. The caller should fetch the
	// stored record and replay it.
	ErrDuplicateTransaction = errors.New("transaction already recorded")
)

// PlayerStore is the durable row store plus transaction ledger consumed by
// the engine. Implementations must make Commit atomic: the row update and
// the ledger append land together or not at all.
type PlayerStore interface {
	// FindPlayer returns the row for a user, or ErrPlayerNotFound.
	FindPlayer(ctx context.Context, userID string) (*types.PlayerState, error)

	// InsertPlayer creates the row for a new user.
	InsertPlayer(ctx context.Context, state *types.PlayerState) error

	// Commit replaces the whole row, compare-and-swapping on state.Version.
	// When record is non-nil it is appended to the ledger in the same
	// storage transaction. On success state.Version is advanced in place.
	Commit(ctx context.Context, state *types.PlayerState, record *types.TransactionRecord) error

	// FindTransaction returns the ledger record for a client transaction id,
	// or nil when the id has never been processed.
	FindTransaction(ctx context.Context, userID, clientTxID string) (*types.TransactionRecord, error)

	// Close releases underlying resources.
	Close() error
}
