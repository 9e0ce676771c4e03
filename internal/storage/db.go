// Package storage provides the SQLite-backed turn log.
// The turn log is append-only operational data: one row per webhook turn,
// retained for a configurable window and periodically archived.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql

	"github.com/conv-showcase/assistant-webhook-go/internal/config"
)

// DB wraps the SQLite database connection
type DB struct {
	conn    *sql.DB
	path    string
	ttl     time.Duration   // Retention window for turn-log rows
	metrics MetricsRecorder // Optional metrics recorder for write failures
}

// MetricsRecorder defines the interface for recording turn-log metrics
type MetricsRecorder interface {
	RecordTurnLogWriteError()
}

// New creates a new database connection and initializes the schema.
// ttl specifies how long turn-log rows are retained before cleanup.
func New(dbPath string, ttl time.Duration) (*DB, error) {
	// Ensure directory exists (skip for in-memory database)
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer, low read volume: keep the pool small
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(config.DatabaseConnMaxLifetime)

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Busy timeout handles write contention between inserts and cleanup
	busyTimeout := fmt.Sprintf("PRAGMA busy_timeout=%d", config.DatabaseBusyTimeout.Milliseconds())
	if _, err := conn.Exec(busyTimeout); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Set synchronous mode to NORMAL for better performance
	if _, err := conn.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	// Test connection
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: dbPath,
		ttl:  ttl,
	}

	if err := initSchema(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Ping verifies the database connection is alive
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// SetMetrics sets the metrics recorder for write-failure monitoring
func (db *DB) SetMetrics(recorder MetricsRecorder) {
	db.metrics = recorder
}

// ttlTimestamp returns the Unix timestamp cutoff for expired rows
func (db *DB) ttlTimestamp() int64 {
	return time.Now().Unix() - int64(db.ttl.Seconds())
}

func initSchema(conn *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT NOT NULL,
		request_id TEXT NOT NULL,
		intent TEXT NOT NULL,
		keyword TEXT,
		terminal INTEGER NOT NULL DEFAULT 0,
		has_screen INTEGER NOT NULL DEFAULT 0,
		duration_ms REAL NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_conversation ON turns(conversation_id);
	CREATE INDEX IF NOT EXISTS idx_turns_created_at ON turns(created_at);
	`

	if _, err := conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create turns table: %w", err)
	}

	return nil
}

// NewTestDB creates an in-memory database for testing.
// Uses a 7-day retention window.
func NewTestDB() (*DB, error) {
	return New(":memory:", 168*time.Hour)
}
