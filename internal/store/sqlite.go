package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DhavalSuthar-24/crease/internal/match"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS match_state (
	match_id   TEXT PRIMARY KEY,
	current    TEXT NOT NULL,
	previous   TEXT,
	updated_at TEXT NOT NULL
)`

// SQLiteStore is the offline working copy kept on the scorer's device.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the state database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, matchID string) (*match.State, error) {
	var current string
	var previous sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT current, previous FROM match_state WHERE match_id = ?`, matchID,
	).Scan(&current, &previous)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, match.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", matchID, err)
	}

	st := &match.State{}
	if err := json.Unmarshal([]byte(current), &st.Current); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	if previous.Valid {
		if err := json.Unmarshal([]byte(previous.String), &st.Previous); err != nil {
			return nil, fmt.Errorf("decode undo slot of %s: %w", matchID, err)
		}
	}
	return st, nil
}

func (s *SQLiteStore) Save(ctx context.Context, state *match.State) error {
	if state == nil || state.Current == nil {
		return match.ErrStateNotFound
	}
	current, err := json.Marshal(state.Current)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	var previous sql.NullString
	if state.Previous != nil {
		b, err := json.Marshal(state.Previous)
		if err != nil {
			return fmt.Errorf("encode undo slot: %w", err)
		}
		previous = sql.NullString{String: string(b), Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO match_state (match_id, current, previous, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(match_id) DO UPDATE SET current = excluded.current,
			previous = excluded.previous, updated_at = excluded.updated_at`,
		state.Current.MatchID, string(current), previous, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save match %s: %w", state.Current.MatchID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM match_state WHERE match_id = ?`, matchID); err != nil {
		return fmt.Errorf("delete match %s: %w", matchID, err)
	}
	return nil
}

// List returns the ids of every stored match, for resuming after a restart.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT match_id FROM match_state ORDER BY updated_at`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
