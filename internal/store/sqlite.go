package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/user/hunter-idle/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	user_id    TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	state      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	user_id      TEXT NOT NULL,
	client_tx_id TEXT NOT NULL,
	type         TEXT NOT NULL,
	payload      TEXT NOT NULL,
	state_after  TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	UNIQUE (user_id, client_tx_id)
);
`

// SQLiteStore persists player rows and the transaction ledger in SQLite.
// The row is stored whole as a JSON column next to its version so every
// logical transaction is a single atomic row replace.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) a SQLite-backed store at the given DSN.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite tolerates exactly one writer; funnel everything through it.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// FindPlayer returns the row for a user, or ErrPlayerNotFound.
func (s *SQLiteStore) FindPlayer(ctx context.Context, userID string) (*types.PlayerState, error) {
	var version int64
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT version, state
		FROM players
		WHERE user_id = ?
	`, userID).Scan(&version, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player row: %w", err)
	}

	var state types.PlayerState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to parse player row: %w", err)
	}
	state.UserID = userID
	state.Version = version
	return &state, nil
}

// InsertPlayer creates the row for a new user at version 1.
func (s *SQLiteStore) InsertPlayer(ctx context.Context, state *types.PlayerState) error {
	state.Version = 1
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal player row: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO players (user_id, version, state, updated_at)
		VALUES (?, ?, ?, ?)
	`, state.UserID, state.Version, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert player row: %w", err)
	}
	return nil
}

// Commit replaces the whole row behind a version compare-and-swap and, when
// record is non-nil, appends the ledger entry in the same transaction.
func (s *SQLiteStore) Commit(ctx context.Context, state *types.PlayerState, record *types.TransactionRecord) error {
	nextVersion := state.Version + 1
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal player row: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE players
		SET version = ?, state = ?, updated_at = ?
		WHERE user_id = ? AND version = ?
	`, nextVersion, string(raw), time.Now().UTC(), state.UserID, state.Version)
	if err != nil {
		return fmt.Errorf("failed to update player row: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected != 1 {
		return ErrVersionConflict
	}

	if record != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (user_id, client_tx_id, type, payload, state_after, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, record.UserID, record.ClientTransactionID, record.Type,
			string(record.Payload), string(record.StateAfter), record.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateTransaction
			}
			return fmt.Errorf("failed to append transaction record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	state.Version = nextVersion
	return nil
}

// FindTransaction returns the stored ledger record, or nil when absent.
func (s *SQLiteStore) FindTransaction(ctx context.Context, userID, clientTxID string) (*types.TransactionRecord, error) {
	record := &types.TransactionRecord{
		UserID:              userID,
		ClientTransactionID: clientTxID,
	}
	var payload, stateAfter string
	err := s.db.QueryRowContext(ctx, `
		SELECT type, payload, state_after, created_at
		FROM transactions
		WHERE user_id = ? AND client_tx_id = ?
	`, userID, clientTxID).Scan(&record.Type, &payload, &stateAfter, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction: %w", err)
	}
	record.Payload = json.RawMessage(payload)
	record.StateAfter = json.RawMessage(stateAfter)
	return record, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
