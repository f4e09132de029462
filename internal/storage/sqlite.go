// Package storage provides the durable persistence layer for budget
// snapshots. The whole store state lives in a single keyed row holding
// a versioned JSON document, mirroring the key-value contract the
// budget store expects.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/digital-byte-innovations/StackWise/internal/common"
	"github.com/digital-byte-innovations/StackWise/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SnapshotKey is the fixed key the budget snapshot is stored under.
const SnapshotKey = "budget-storage"

// SQLiteStore persists budget snapshots to a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite-backed snapshot store and runs
// any pending migrations.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Load reads the persisted snapshot. A missing row or an unreadable
// document yields (nil, nil): the caller starts from an empty state
// rather than failing hydration.
func (s *SQLiteStore) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT document FROM snapshots WHERE key = ?`

	var raw string
	err := s.db.QueryRowContext(ctx, query, SnapshotKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // no snapshot yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	snapshot, version, err := decodeDocument([]byte(raw))
	if err != nil {
		common.LogWarn("discarding unreadable snapshot document", common.Fields{"error": err})
		return nil, nil
	}

	common.LogDebug("loaded snapshot", common.Fields{
		"version":      version,
		"transactions": len(snapshot.Transactions),
		"categories":   len(snapshot.Categories),
	})
	return snapshot, nil
}

// Save writes the snapshot under the fixed key, replacing any previous
// document.
func (s *SQLiteStore) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}

	raw, err := encodeDocument(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (key, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, SnapshotKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
