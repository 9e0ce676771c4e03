package storage

import (
	"context"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestInsertTurn(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.InsertTurn(ctx, TurnRecord{
		ConversationID: "conv-1",
		RequestID:      "req-1",
		Intent:         "text",
		Keyword:        "basic card",
		HasScreen:      true,
		DurationMS:     1.5,
	})
	if err != nil {
		t.Fatalf("InsertTurn() failed: %v", err)
	}

	count, err := db.CountTurns(ctx)
	if err != nil {
		t.Fatalf("CountTurns() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountTurns() = %d, want 1", count)
	}
}

func TestCountConversationTurns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, conv := range []string{"conv-a", "conv-a", "conv-b"} {
		err := db.InsertTurn(ctx, TurnRecord{
			ConversationID: conv,
			RequestID:      "req",
			Intent:         "text",
		})
		if err != nil {
			t.Fatalf("InsertTurn() failed: %v", err)
		}
	}

	count, err := db.CountConversationTurns(ctx, "conv-a")
	if err != nil {
		t.Fatalf("CountConversationTurns() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("CountConversationTurns(conv-a) = %d, want 2", count)
	}

	count, err = db.CountConversationTurns(ctx, "conv-missing")
	if err != nil {
		t.Fatalf("CountConversationTurns() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountConversationTurns(conv-missing) = %d, want 0", count)
	}
}

func TestDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// One row well past the retention window, one fresh
	err := db.InsertTurn(ctx, TurnRecord{
		ConversationID: "conv-old",
		RequestID:      "req-old",
		Intent:         "text",
		CreatedAt:      time.Now().Add(-500 * time.Hour),
	})
	if err != nil {
		t.Fatalf("InsertTurn(old) failed: %v", err)
	}
	err = db.InsertTurn(ctx, TurnRecord{
		ConversationID: "conv-new",
		RequestID:      "req-new",
		Intent:         "text",
	})
	if err != nil {
		t.Fatalf("InsertTurn(new) failed: %v", err)
	}

	deleted, err := db.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteExpired() = %d, want 1", deleted)
	}

	count, err := db.CountTurns(ctx)
	if err != nil {
		t.Fatalf("CountTurns() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountTurns() after cleanup = %d, want 1", count)
	}
}

func TestDeleteExpired_NothingExpired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.InsertTurn(ctx, TurnRecord{
		ConversationID: "conv-1",
		RequestID:      "req-1",
		Intent:         "main",
	})
	if err != nil {
		t.Fatalf("InsertTurn() failed: %v", err)
	}

	deleted, err := db.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("DeleteExpired() = %d, want 0", deleted)
	}
}
