// Package config provides centralized timeout constants for the application.
//
// These values are tuned based on:
//   - Assistant platform constraints (the platform expects a webhook response
//     within ~10 seconds or it abandons the conversation turn)
//   - SQLite performance characteristics (WAL mode, busy timeout)
//
// Turn handling is fully in-memory (catalogue lookup plus response
// serialization), so the generous-looking webhook timeout exists only to
// cover turn-log writes on a contended disk.
package config

import "time"

// Webhook timeouts
const (
	// WebhookProcessing is the timeout for processing a single conversation turn.
	// This covers routing, response building, and the turn-log insert.
	WebhookProcessing = 8 * time.Second

	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	// Should be short since the platform sends small JSON payloads.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	// Should accommodate WebhookProcessing + response serialization.
	WebhookHTTPWrite = 15 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value.
	// Handles write contention between turn inserts and cleanup jobs.
	DatabaseBusyTimeout = 5 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	// Prevents stale connections and allows connection pool refresh.
	DatabaseConnMaxLifetime = time.Hour
)

// Background job intervals
const (
	// TurnLogCleanupInterval is how often expired turn-log rows are deleted.
	TurnLogCleanupInterval = 12 * time.Hour

	// TurnLogCleanupInitialDelay is the delay before first turn-log cleanup.
	// Allows server to stabilize before running cleanup.
	TurnLogCleanupInitialDelay = 5 * time.Minute

	// ArchiveInterval is how often the turn log is snapshotted to object storage.
	ArchiveInterval = 24 * time.Hour

	// ArchiveInitialDelay is the delay before the first archive upload.
	ArchiveInitialDelay = 1 * time.Hour

	// ArchiveUploadTimeout is the timeout for a single archive upload.
	ArchiveUploadTimeout = 2 * time.Minute

	// MetricsUpdateInterval is how often turn-log size metrics are updated.
	MetricsUpdateInterval = 5 * time.Minute

	// RateLimiterCleanupInterval is how often inactive conversation rate
	// limiters are cleaned.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second
)
