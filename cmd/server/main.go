// Package main provides the assistant webhook server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/conv-showcase/assistant-webhook-go/internal/buildinfo"
	"github.com/conv-showcase/assistant-webhook-go/internal/config"
	"github.com/conv-showcase/assistant-webhook-go/internal/logger"
	"github.com/conv-showcase/assistant-webhook-go/internal/metrics"
	"github.com/conv-showcase/assistant-webhook-go/internal/objstore"
	"github.com/conv-showcase/assistant-webhook-go/internal/sentry"
	"github.com/conv-showcase/assistant-webhook-go/internal/storage"
	"github.com/conv-showcase/assistant-webhook-go/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(logger.Options{
		Level:               cfg.LogLevel,
		BetterstackToken:    cfg.BetterstackToken,
		BetterstackEndpoint: cfg.BetterstackEndpoint,
	})
	log.WithField("release", buildinfo.Release()).Info("Starting assistant webhook server")

	// Initialize error reporting
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
	}); err != nil {
		log.WithError(err).Error("Failed to initialize Sentry; continuing without it")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error reporting enabled")
	}

	// Open the turn log
	db, err := storage.New(cfg.SQLitePath(), cfg.TurnLogTTL)
	if err != nil {
		log.WithError(err).Fatal("Failed to open turn log")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).
		WithField("turn_log_ttl", cfg.TurnLogTTL).
		Info("Turn log opened")

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics
	m := metrics.New(registry)
	db.SetMetrics(m)
	log.Info("Metrics initialized")

	// Create turn-log archiver (optional)
	var archiver *objstore.Archiver
	if cfg.ArchiveEnabled() {
		client, err := objstore.New(context.Background(), objstore.Config{
			Endpoint:    cfg.ArchiveEndpoint,
			AccessKeyID: cfg.ArchiveAccessKey,
			SecretKey:   cfg.ArchiveSecretKey,
			BucketName:  cfg.ArchiveBucket,
		})
		if err != nil {
			log.WithError(err).Error("Failed to create archive client; archiving disabled")
		} else {
			archiver = objstore.NewArchiver(client, cfg.ArchivePrefix)
			log.WithField("bucket", cfg.ArchiveBucket).
				WithField("prefix", cfg.ArchivePrefix).
				Info("Turn-log archiving enabled")
		}
	}

	// Create webhook handler
	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		Webhook: cfg.Webhook,
		Metrics: m,
		Logger:  log,
		DB:      db,
	})
	log.Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	// Setup routes
	setupRoutes(router, cfg, webhookHandler, db, registry)

	// Create HTTP server with timeouts sized for small JSON turn payloads
	// See internal/config/timeouts.go for detailed explanations
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.WebhookHTTPRead,
		WriteTimeout: config.WebhookHTTPWrite,
		IdleTimeout:  config.WebhookHTTPIdle,
	}

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs := startBackgroundJobs(ctx, jobDeps{
		db:       db,
		archiver: archiver,
		metrics:  m,
		logger:   log,
	})

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop webhook handler background goroutines
	webhookHandler.Close()

	// Cancel context and wait for background jobs
	cancel()
	if err := jobs.Wait(); err != nil {
		log.WithError(err).Warn("Background job exited with error")
	} else {
		log.Info("All background jobs stopped")
	}

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown server gracefully
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Flush pending error reports
	if sentry.IsEnabled() {
		sentry.Flush(2 * time.Second)
	}

	// Close the turn log
	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close turn log")
	}

	log.Info("Server stopped")
}
