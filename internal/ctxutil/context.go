// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	conversationIDKey contextKey = "ctxutil.conversationID"
	requestIDKey      contextKey = "ctxutil.requestID"
)

// WithConversationID adds a conversation ID to the context.
// Conversation ID comes from the webhook payload and is used for
// rate limiting and log correlation across turns.
func WithConversationID(ctx context.Context, conversationID string) context.Context {
	return context.WithValue(ctx, conversationIDKey, conversationID)
}

// GetConversationID retrieves the conversation ID from the context.
// Returns the conversation ID if found, empty string otherwise.
func GetConversationID(ctx context.Context) string {
	if v := ctx.Value(conversationIDKey); v != nil {
		if conversationID, ok := v.(string); ok && conversationID != "" {
			return conversationID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated per webhook request for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// PreserveTracing creates a detached context that preserves tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// This function creates a fresh context.Background() and copies only tracing
// values, avoiding memory leaks from retaining parent context references
// (Go issue #64478).
//
// Use for work that needs tracing but must outlive the request context, such
// as recording a turn after the response has been written.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if conversationID := GetConversationID(ctx); conversationID != "" {
		newCtx = WithConversationID(newCtx, conversationID)
	}
	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		newCtx = WithRequestID(newCtx, requestID)
	}

	return newCtx
}
