// Package sqlite implements the SQLite storage backend for larder. Each
// collection lives in its own table, indexed by profile; list documents and
// dish item lists are persisted as JSON columns so every document write is
// a single-row, atomic statement.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Storage owns the SQLite connection shared by the repositories. Writes are
// serialized through mu; concurrent readers share an RLock.
type Storage struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open validates the config, creates the data directory if needed, opens
// the database and applies the schema. The schema uses IF NOT EXISTS so
// reopening an existing data directory is safe.
func Open(config types.Config) (*Storage, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "larder.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// OpenMemory opens a fresh in-memory database. Intended for tests.
func OpenMemory() (*Storage, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close releases the database connection. Idempotent.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Ping verifies the connection is alive.
func (s *Storage) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return sql.ErrConnDone
	}
	return s.db.PingContext(ctx)
}

// newUUID generates a UUID v7 for entity IDs, falling back to v4 if v7
// generation fails.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
