package webhook

import (
	"sync"
	"time"

	"github.com/conv-showcase/assistant-webhook-go/internal/metrics"
)

// RateLimiter implements a token bucket rate limiter.
// Used both globally and per conversation to keep a chatty surface (or a
// misbehaving simulator session) from monopolizing the webhook.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter
// maxTokens: maximum number of tokens in the bucket
// refillRate: number of tokens to add per second
func NewRateLimiter(maxTokens, refillRate float64) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow checks if a request is allowed based on rate limit
// Returns true if the request is allowed, false otherwise
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()

	// Refill tokens
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}

	return false
}

// AvailableTokens returns the current number of available tokens
func (rl *RateLimiter) AvailableTokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()

	tokens := rl.tokens + (elapsed * rl.refillRate)
	if tokens > rl.maxTokens {
		tokens = rl.maxTokens
	}

	return tokens
}

// ConversationRateLimiter tracks rate limits per conversation
type ConversationRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*RateLimiter
	cleanup  time.Duration
	metrics  *metrics.Metrics // Optional metrics recorder for tracking dropped requests
	done     chan struct{}
}

// NewConversationRateLimiter creates a new per-conversation rate limiter
// metrics parameter is optional and can be nil
func NewConversationRateLimiter(cleanup time.Duration, m *metrics.Metrics) *ConversationRateLimiter {
	crl := &ConversationRateLimiter{
		limiters: make(map[string]*RateLimiter),
		cleanup:  cleanup,
		metrics:  m,
		done:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go crl.cleanupLoop()

	return crl
}

// Allow checks if a request from a specific conversation is allowed
// conversationID: the platform conversation ID
// maxTokens: maximum tokens per conversation (e.g., 15)
// refillRate: refill rate per second (e.g., 0.5 = 1 request per 2 seconds)
func (crl *ConversationRateLimiter) Allow(conversationID string, maxTokens, refillRate float64) bool {
	crl.mu.RLock()
	limiter, exists := crl.limiters[conversationID]
	crl.mu.RUnlock()

	if !exists {
		crl.mu.Lock()
		// Re-check under the write lock
		limiter, exists = crl.limiters[conversationID]
		if !exists {
			limiter = NewRateLimiter(maxTokens, refillRate)
			crl.limiters[conversationID] = limiter
		}
		crl.mu.Unlock()
	}

	allowed := limiter.Allow()
	if !allowed && crl.metrics != nil {
		crl.metrics.RecordRateLimiterDrop("conversation")
	}
	return allowed
}

// Stop terminates the cleanup goroutine
func (crl *ConversationRateLimiter) Stop() {
	close(crl.done)
}

// cleanupLoop periodically removes inactive rate limiters
func (crl *ConversationRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(crl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-crl.done:
			return
		case <-ticker.C:
			crl.mu.Lock()
			// Limiters back at full capacity belong to idle conversations
			for conversationID, limiter := range crl.limiters {
				if limiter.AvailableTokens() >= limiter.maxTokens {
					delete(crl.limiters, conversationID)
				}
			}
			crl.mu.Unlock()
		}
	}
}
