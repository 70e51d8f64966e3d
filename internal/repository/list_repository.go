package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/gulu-app/restock-service/internal/domain"
)

// The whole list collection persists as one JSON document in a single
// key/value slot, written back in full after every mutation.
const (
	slotKey     = "lists"
	createTable = `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	upsertSlot = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	selectSlot = `SELECT value FROM kv WHERE key = ?`
)

type ListRepository struct {
	db *sql.DB
}

// OpenDB opens (or creates) the SQLite database file and ensures the slot
// table exists.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slot table: %w", err)
	}
	return db, nil
}

func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

// LoadAll reads the persisted collection. A missing slot returns (nil, nil)
// so the caller can seed; a slot that cannot be parsed returns an error the
// caller is expected to treat as soft failure, not a crash.
func (r *ListRepository) LoadAll(ctx context.Context) ([]domain.List, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, selectSlot, slotKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}

	var lists []domain.List
	if err := json.Unmarshal([]byte(raw), &lists); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lists: %w", err)
	}
	return lists, nil
}

// SaveAll overwrites the slot with the full collection, synchronously.
func (r *ListRepository) SaveAll(ctx context.Context, lists []domain.List) error {
	if lists == nil {
		lists = []domain.List{}
	}
	raw, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("failed to marshal lists: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, upsertSlot, slotKey, string(raw)); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}
