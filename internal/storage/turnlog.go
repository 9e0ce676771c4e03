package storage

import (
	"context"
	"fmt"
	"time"
)

// TurnRecord is one webhook turn as stored in the turn log
type TurnRecord struct {
	ConversationID string
	RequestID      string
	Intent         string
	Keyword        string // routed catalogue keyword, empty for non-text intents
	Terminal       bool
	HasScreen      bool
	DurationMS     float64
	CreatedAt      time.Time
}

// InsertTurn appends one turn to the log.
// A zero CreatedAt is filled with the current time.
func (db *DB) InsertTurn(ctx context.Context, rec TurnRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
	INSERT INTO turns (conversation_id, request_id, intent, keyword, terminal, has_screen, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.ExecContext(ctx, query,
		rec.ConversationID,
		rec.RequestID,
		rec.Intent,
		rec.Keyword,
		boolToInt(rec.Terminal),
		boolToInt(rec.HasScreen),
		rec.DurationMS,
		createdAt.Unix(),
	)
	if err != nil {
		if db.metrics != nil {
			db.metrics.RecordTurnLogWriteError()
		}
		return fmt.Errorf("failed to insert turn: %w", err)
	}

	return nil
}

// CountTurns returns the total number of rows in the turn log
func (db *DB) CountTurns(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM turns`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return count, nil
}

// CountConversationTurns returns the number of logged turns for one conversation
func (db *DB) CountConversationTurns(ctx context.Context, conversationID string) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM turns WHERE conversation_id = ?`, conversationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count conversation turns: %w", err)
	}
	return count, nil
}

// DeleteExpired removes rows older than the retention window.
// Returns the number of rows deleted.
func (db *DB) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM turns WHERE created_at < ?`, db.ttlTimestamp())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired turns: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read deleted row count: %w", err)
	}
	return deleted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
