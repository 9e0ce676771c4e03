package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/conv-showcase/assistant-webhook-go/internal/config"
)

func TestNew_InMemory(t *testing.T) {
	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
	if db.Path() != ":memory:" {
		t.Errorf("Path() = %q, want ':memory:'", db.Path())
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "turnlog.db")

	db, err := New(dbPath, 24*time.Hour)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

type fakeMetrics struct {
	writeErrors int
}

func (f *fakeMetrics) RecordTurnLogWriteError() {
	f.writeErrors++
}

func TestSetMetrics_RecordsWriteErrors(t *testing.T) {
	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}

	m := &fakeMetrics{}
	db.SetMetrics(m)

	// Closing the connection forces the next insert to fail
	_ = db.Close()

	err = db.InsertTurn(context.Background(), TurnRecord{
		ConversationID: "conv-1",
		RequestID:      "req-1",
		Intent:         "text",
	})
	if err == nil {
		t.Fatal("InsertTurn() on closed DB succeeded, want error")
	}
	if m.writeErrors != 1 {
		t.Errorf("writeErrors = %d, want 1", m.writeErrors)
	}
}

func TestNew_AppliesPoolTimeouts(t *testing.T) {
	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	var busyMS int64
	if err := db.conn.QueryRow("PRAGMA busy_timeout").Scan(&busyMS); err != nil {
		t.Fatalf("query busy_timeout: %v", err)
	}
	if want := config.DatabaseBusyTimeout.Milliseconds(); busyMS != want {
		t.Errorf("busy_timeout = %dms, want %dms", busyMS, want)
	}
}
