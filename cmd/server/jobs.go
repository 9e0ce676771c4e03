// Package main provides the assistant webhook server entry point.
package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/conv-showcase/assistant-webhook-go/internal/config"
	"github.com/conv-showcase/assistant-webhook-go/internal/logger"
	"github.com/conv-showcase/assistant-webhook-go/internal/metrics"
	"github.com/conv-showcase/assistant-webhook-go/internal/objstore"
	"github.com/conv-showcase/assistant-webhook-go/internal/sentry"
	"github.com/conv-showcase/assistant-webhook-go/internal/storage"
)

// jobDeps bundles everything the background jobs need
type jobDeps struct {
	db       *storage.DB
	archiver *objstore.Archiver // nil when archiving is disabled
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// startBackgroundJobs launches the periodic maintenance jobs.
// Jobs run until the context is canceled; Wait on the returned group during
// shutdown.
func startBackgroundJobs(ctx context.Context, deps jobDeps) *errgroup.Group {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cleanupExpiredTurns(ctx, deps)
		return nil
	})

	g.Go(func() error {
		updateTurnLogMetrics(ctx, deps)
		return nil
	})

	if deps.archiver != nil {
		g.Go(func() error {
			archiveTurnLog(ctx, deps)
			return nil
		})
	}

	return g
}

// cleanupExpiredTurns periodically removes turn-log rows past retention
func cleanupExpiredTurns(ctx context.Context, deps jobDeps) {
	log := deps.logger.WithModule("cleanup")

	// Run initial cleanup after configured delay to let server stabilize
	select {
	case <-ctx.Done():
		return
	case <-time.After(config.TurnLogCleanupInitialDelay):
		performCleanup(ctx, deps, log)
	}

	ticker := time.NewTicker(config.TurnLogCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			performCleanup(ctx, deps, log)
		}
	}
}

// performCleanup executes one turn-log cleanup pass
func performCleanup(ctx context.Context, deps jobDeps, log *logger.Logger) {
	deleted, err := deps.db.DeleteExpired(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to clean up expired turns")
		sentry.CaptureExceptionWithContext(ctx, err)
		return
	}

	remaining, _ := deps.db.CountTurns(ctx)
	log.WithField("deleted", deleted).
		WithField("remaining", remaining).
		Info("Turn-log cleanup complete")
}

// updateTurnLogMetrics periodically refreshes the turn-log row count gauge
func updateTurnLogMetrics(ctx context.Context, deps jobDeps) {
	log := deps.logger.WithModule("metrics")

	ticker := time.NewTicker(config.MetricsUpdateInterval)
	defer ticker.Stop()

	// Run initial update immediately
	performMetricsUpdate(ctx, deps, log)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			performMetricsUpdate(ctx, deps, log)
		}
	}
}

// performMetricsUpdate refreshes the turn-log gauges
func performMetricsUpdate(ctx context.Context, deps jobDeps, log *logger.Logger) {
	count, err := deps.db.CountTurns(ctx)
	if err != nil {
		log.WithError(err).Debug("Failed to count turns for metrics")
		return
	}
	deps.metrics.SetTurnLogRows(count)
}

// archiveTurnLog periodically snapshots the turn log to object storage
func archiveTurnLog(ctx context.Context, deps jobDeps) {
	log := deps.logger.WithModule("archive")

	// Delay the first upload so a crash-looping deployment doesn't spam the bucket
	select {
	case <-ctx.Done():
		return
	case <-time.After(config.ArchiveInitialDelay):
		performArchive(ctx, deps, log)
	}

	ticker := time.NewTicker(config.ArchiveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			performArchive(ctx, deps, log)
		}
	}
}

// performArchive uploads one compressed turn-log snapshot
func performArchive(ctx context.Context, deps jobDeps, log *logger.Logger) {
	uploadCtx, cancel := context.WithTimeout(ctx, config.ArchiveUploadTimeout)
	defer cancel()

	key, err := deps.archiver.ArchiveFile(uploadCtx, deps.db.Path())
	if err != nil {
		log.WithError(err).Error("Failed to archive turn log")
		deps.metrics.RecordArchiveUpload("error")
		sentry.CaptureExceptionWithContext(ctx, err)
		return
	}

	deps.metrics.RecordArchiveUpload("success")
	log.WithField("key", key).Info("Turn-log snapshot uploaded")
}
