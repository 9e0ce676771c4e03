// Package logger provides structured logging for the webhook service.
// It wraps log/slog with JSON formatting and supports per-turn fields
// (conversation ID, intent, module) plus optional Better Stack ingestion.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogbetterstack "github.com/samber/slog-betterstack"

	"github.com/conv-showcase/assistant-webhook-go/internal/ctxutil"
)

// Logger is the application logger.
type Logger struct {
	*slog.Logger
}

// Options configures logger construction.
type Options struct {
	Level  string
	Writer io.Writer

	// BetterstackToken enables shipping records to Better Stack when set.
	BetterstackToken    string
	BetterstackEndpoint string
}

// New creates a JSON logger writing to stdout.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a JSON logger writing to the provided writer.
func NewWithWriter(level string, w io.Writer) *Logger {
	return NewWithOptions(Options{Level: level, Writer: w})
}

// NewWithOptions creates a logger from the full option set. When a Better
// Stack token is configured, records fan out to both the local JSON handler
// and the Better Stack handler.
func NewWithOptions(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	logLevel := parseLevel(opts.Level)

	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: normalizeAttrs,
	})

	var handler slog.Handler = jsonHandler
	if opts.BetterstackToken != "" {
		bsHandler := slogbetterstack.Option{
			Level:    logLevel,
			Token:    opts.BetterstackToken,
			Endpoint: opts.BetterstackEndpoint,
		}.NewBetterstackHandler()
		handler = NewMultiHandler(jsonHandler, bsHandler)
	}

	return &Logger{Logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// normalizeAttrs renames the builtin keys to the log schema used across
// deployments (timestamp/level/message, lowercase levels).
func normalizeAttrs(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.LevelKey:
		a.Key = "level"
		level := a.Value.String()
		if level == "WARN" {
			level = "warning"
		} else {
			level = strings.ToLower(level)
		}
		a.Value = slog.StringValue(level)
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// WithModule creates a new entry with a module field.
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{Logger: l.With("module", module)}
}

// WithConversationID creates a new entry with the conversation ID field.
func (l *Logger) WithConversationID(id string) *Logger {
	return &Logger{Logger: l.With("conversation_id", id)}
}

// WithRequestID creates a new entry with a request ID field.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.With("request_id", requestID)}
}

// WithContext creates a new entry carrying the tracing IDs stored in the
// context, skipping whichever is absent.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	out := l
	if id := ctxutil.GetConversationID(ctx); id != "" {
		out = out.WithConversationID(id)
	}
	if requestID, ok := ctxutil.GetRequestID(ctx); ok && requestID != "" {
		out = out.WithRequestID(requestID)
	}
	return out
}

// WithError creates a new entry with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With("error", err)}
}

// WithField creates a new entry with a single field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Logger: l.With(key, value)}
}

// WithFields creates a new entry with multiple fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.With(args...)}
}

// Fatal logs at error level and exits. Reserved for unrecoverable startup
// failures.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}
