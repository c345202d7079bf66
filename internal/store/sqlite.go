package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLite stores the snapshot as JSON text in the snapshots table, keyed by
// a state key. The table is created by the migrations package.
type SQLite struct {
	db  *sql.DB
	key string
}

// NewSQLite returns a store for key, falling back to DefaultStateKey.
func NewSQLite(db *sql.DB, key string) *SQLite {
	if key == "" {
		key = DefaultStateKey
	}
	return &SQLite{db: db, key: key}
}

func (s *SQLite) Save(ctx context.Context, snap Snapshot) error {
	document, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (state_key, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(state_key) DO UPDATE SET
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP
	`, s.key, string(document))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context) (Snapshot, bool, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE state_key = ?`, s.key).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("query snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(document), &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE state_key = ?`, s.key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
