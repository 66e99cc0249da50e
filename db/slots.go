// ABOUTME: SQLite-backed slot store implementing store.Backend
// ABOUTME: Each write upserts kv_slots and appends an audit row to slot_history
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/revenueos/store"
)

// SlotStore keeps named slots in a single SQLite database.
type SlotStore struct {
	db  *sql.DB
	now func() time.Time
}

// SlotEvent is one row of the slot audit trail.
type SlotEvent struct {
	Key        string
	Action     string
	Size       int
	RecordedAt time.Time
}

// OpenSlotStore opens (creating if needed) the database at path.
func OpenSlotStore(path string) (*SlotStore, error) {
	conn, err := OpenDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open slot store: %w", err)
	}
	return NewSlotStore(conn), nil
}

// NewSlotStore wraps an already initialized connection.
func NewSlotStore(conn *sql.DB) *SlotStore {
	return &SlotStore{db: conn, now: time.Now}
}

func (s *SlotStore) Close() error {
	return s.db.Close()
}

func (s *SlotStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv_slots WHERE key = ?`, string(key)).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, store.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return value, nil
}

func (s *SlotStore) Set(key, value []byte) error {
	now := s.now().UTC()
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value, now)
	if err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	if err := recordHistory(tx, string(key), "set", len(value), now); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (s *SlotStore) Delete(key []byte) error {
	now := s.now().UTC()
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM kv_slots WHERE key = ?`, string(key))
	if err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if err := recordHistory(tx, string(key), "delete", 0, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Keys lists the stored slot names in key order.
func (s *SlotStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv_slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan slot key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// UpdatedAt reports when key was last written.
func (s *SlotStore) UpdatedAt(key string) (time.Time, error) {
	var ts time.Time
	err := s.db.QueryRow(`SELECT updated_at FROM kv_slots WHERE key = ?`, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, store.ErrSlotNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read slot timestamp: %w", err)
	}
	return ts, nil
}

// History returns the newest audit rows for key, newest first.
func (s *SlotStore) History(key string, limit int) ([]SlotEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT key, action, size, recorded_at FROM slot_history
		WHERE key = ? ORDER BY id DESC LIMIT ?
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot history: %w", err)
	}
	defer rows.Close()

	var events []SlotEvent
	for rows.Next() {
		var e SlotEvent
		if err := rows.Scan(&e.Key, &e.Action, &e.Size, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot history: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func recordHistory(tx *sql.Tx, key, action string, size int, at time.Time) error {
	_, err := tx.Exec(`INSERT INTO slot_history (key, action, size, recorded_at) VALUES (?, ?, ?, ?)`, key, action, size, at)
	if err != nil {
		return fmt.Errorf("failed to record slot history: %w", err)
	}
	return nil
}

var _ store.Backend = (*SlotStore)(nil)
