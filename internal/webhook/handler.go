// Package webhook handles inbound conversation-turn requests from the
// assistant platform and dispatches them to the response catalogue.
package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/conv-showcase/assistant-webhook-go/internal/aog"
	"github.com/conv-showcase/assistant-webhook-go/internal/config"
	"github.com/conv-showcase/assistant-webhook-go/internal/conv"
	"github.com/conv-showcase/assistant-webhook-go/internal/ctxutil"
	"github.com/conv-showcase/assistant-webhook-go/internal/logger"
	"github.com/conv-showcase/assistant-webhook-go/internal/metrics"
	"github.com/conv-showcase/assistant-webhook-go/internal/storage"
)

// Handler handles assistant webhook turns
type Handler struct {
	cfg           config.WebhookConfig
	metrics       *metrics.Metrics
	logger        *logger.Logger
	db            *storage.DB // optional turn log, nil disables logging turns
	convLimiter   *ConversationRateLimiter
	globalLimiter *RateLimiter
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	Webhook config.WebhookConfig
	Metrics *metrics.Metrics
	Logger  *logger.Logger
	DB      *storage.DB
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		cfg:           cfg.Webhook,
		metrics:       cfg.Metrics,
		logger:        cfg.Logger.WithModule("webhook"),
		db:            cfg.DB,
		convLimiter:   NewConversationRateLimiter(config.RateLimiterCleanupInterval, cfg.Metrics),
		globalLimiter: NewRateLimiter(cfg.Webhook.GlobalRateLimitRPS, cfg.Webhook.GlobalRateLimitRPS),
	}
}

// Close stops the handler's background rate-limiter cleanup.
func (h *Handler) Close() {
	h.convLimiter.Stop()
}

// Handle is the Gin handler for the webhook endpoint
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()

	// 1. Parse request
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodyBytes)
	var req aog.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to decode webhook request")
		h.metrics.RecordHTTPError("bad_request")
		c.Status(http.StatusBadRequest)
		return
	}

	// 2. Establish tracing identity
	requestID := uuid.New().String()
	conversationID := req.ConversationID()
	if conversationID == "" {
		// The simulator occasionally omits the conversation; synthesize one so
		// rate limiting and logs still have a subject.
		conversationID = "anon-" + uuid.New().String()
	}

	ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
	ctx = ctxutil.WithConversationID(ctx, conversationID)

	log := h.logger.WithContext(ctx)

	// 3. Rate limits: global first, then per conversation
	if !h.globalLimiter.Allow() {
		log.Warn("Global rate limit exceeded")
		h.metrics.RecordRateLimiterDrop("global")
		h.metrics.RecordHTTPError("rate_limit")
		c.Status(http.StatusTooManyRequests)
		return
	}
	if !h.convLimiter.Allow(conversationID, h.cfg.ConvRateLimitBurst, h.cfg.ConvRateLimitRefillPerSec) {
		// Rate-limited conversations still get a well-formed turn so the
		// assistant speaks the slow-down message instead of erroring out.
		log.Warn("Conversation rate limit exceeded")
		c.JSON(http.StatusOK, aog.BuildResponse(conv.RateLimited()))
		return
	}

	// 4. Derive surface capabilities and dispatch
	snap := conv.Derive(req.CapabilityTokens())
	intentLabel := intentLabel(req.Intent())

	turn, keyword := h.dispatch(&req, snap, log)

	resp := aog.BuildResponse(turn)
	c.JSON(http.StatusOK, resp)

	// 5. Record the turn. The response is already written, so recording runs
	// on a context detached from the request: a client disconnect must not
	// abort the insert, but the turn deadline still bounds it.
	durationMS := float64(time.Since(start).Microseconds()) / 1000.0
	h.metrics.RecordWebhook(intentLabel, "success", durationMS/1000.0)

	if h.db != nil {
		recordCtx, cancel := context.WithTimeout(ctxutil.PreserveTracing(ctx), h.cfg.Timeout)
		defer cancel()

		rec := storage.TurnRecord{
			ConversationID: conversationID,
			RequestID:      requestID,
			Intent:         intentLabel,
			Keyword:        keyword,
			Terminal:       turn.Terminal,
			HasScreen:      snap.HasScreen,
			DurationMS:     durationMS,
		}
		if err := h.db.InsertTurn(recordCtx, rec); err != nil {
			log.WithError(err).Error("Failed to record turn")
		}
		if turn.Terminal {
			// Conversation just ended; report how many turns it ran.
			if n, err := h.db.CountConversationTurns(recordCtx, conversationID); err == nil {
				log = log.WithField("conversation_turns", n)
			}
		}
	}

	log.WithField("intent", intentLabel).
		WithField("keyword", keyword).
		WithField("terminal", turn.Terminal).
		WithField("duration_ms", durationMS).
		Info("Turn processed")
}

// dispatch builds the turn for the request's intent.
// The screen gate runs before intent dispatch, mirroring the platform's
// middleware order: a screenless surface gets the redirect no matter which
// intent arrived.
func (h *Handler) dispatch(req *aog.WebhookRequest, snap conv.Snapshot, log *logger.Logger) (conv.Turn, string) {
	if !snap.HasScreen {
		h.metrics.RecordCapabilityFallback("screen")
		return conv.ScreenGate(), ""
	}

	switch req.Intent() {
	case aog.IntentMain:
		return conv.Welcome(), ""

	case aog.IntentOption:
		key := req.OptionKey()
		outcome := conv.SelectionOutcome(key)
		h.metrics.RecordSelection(outcome)
		if outcome != "known" {
			log.WithField("option_key", key).Debug("Unresolved selection")
		}
		return conv.Turn{
			Variants:    []conv.Variant{conv.TextVariant(conv.ResolveSelection(key))},
			Suggestions: conv.Chips(),
		}, ""

	case aog.IntentMediaStatus:
		return conv.MediaStatus(req.MediaFinished()), ""

	case aog.IntentCancel:
		return conv.Cancel(), ""

	default:
		// TEXT and anything unrecognized both route on the raw utterance
		raw := req.RawQuery()
		keyword := conv.RouteKeyword(raw)
		h.metrics.RecordRoutedKeyword(keyword)
		h.recordDowngrades(keyword, snap)
		return conv.Route(raw, snap), keyword
	}
}

// recordDowngrades counts turns where a builder substituted a fallback for a
// capability the surface lacks.
func (h *Handler) recordDowngrades(keyword string, snap conv.Snapshot) {
	switch keyword {
	case conv.KeywordMedia:
		if !snap.HasAudioPlayback {
			h.metrics.RecordCapabilityFallback("audio")
		}
	case conv.KeywordBrowseCarousel:
		if !snap.HasWebBrowser {
			h.metrics.RecordCapabilityFallback("web_browser")
		}
	}
}

// intentLabel maps platform intent names to short metric labels
func intentLabel(intent string) string {
	switch intent {
	case aog.IntentMain:
		return "main"
	case aog.IntentText:
		return "text"
	case aog.IntentOption:
		return "option"
	case aog.IntentMediaStatus:
		return "media_status"
	case aog.IntentCancel:
		return "cancel"
	default:
		return "unknown"
	}
}
