package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"centralbank/internal/domain"
)

// SQLiteStore is an alternative Store backend for deployments that want
// a queryable file instead of a line-oriented log, selected by config
// (internal/config) rather than by any domain-level difference — the
// Store interface makes the two interchangeable.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a SQLite database at
// path and ensures its single transactions table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open sqlite %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id           INTEGER PRIMARY KEY,
	performed_at INTEGER NOT NULL,
	payload      TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts tx, keyed by its own TransactionId so a replay that
// re-appends an already-stored transaction fails loudly instead of
// duplicating the row.
func (s *SQLiteStore) Append(tx domain.Transaction) error {
	payload, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("ledger: marshal transaction %d: %w", tx.Id, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO transactions (id, performed_at, payload) VALUES (?, ?, ?)`,
		uint64(tx.Id), tx.PerformedAt.UnixNano(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("ledger: insert transaction %d: %w", tx.Id, err)
	}
	return nil
}

// Scan returns every stored transaction ordered by id, which coincides
// with insertion order under normal operation.
func (s *SQLiteStore) Scan() ([]domain.Transaction, error) {
	rows, err := s.db.Query(`SELECT payload FROM transactions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("ledger: scan sqlite store: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("ledger: read row: %w", err)
		}
		var tx domain.Transaction
		if err := json.Unmarshal([]byte(payload), &tx); err != nil {
			continue
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
