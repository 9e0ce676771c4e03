package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/conv-showcase/assistant-webhook-go/internal/aog"
	"github.com/conv-showcase/assistant-webhook-go/internal/config"
	"github.com/conv-showcase/assistant-webhook-go/internal/logger"
	"github.com/conv-showcase/assistant-webhook-go/internal/metrics"
	"github.com/conv-showcase/assistant-webhook-go/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testWebhookConfig() config.WebhookConfig {
	return config.WebhookConfig{
		Timeout:                   config.WebhookProcessing,
		ConvRateLimitBurst:        15.0,
		ConvRateLimitRefillPerSec: 0.5,
		GlobalRateLimitRPS:        100.0,
		MaxBodyBytes:              64 * 1024,
	}
}

func newTestHandler(t *testing.T, cfg config.WebhookConfig) (*Handler, *storage.DB) {
	t.Helper()

	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	h := NewHandler(HandlerConfig{
		Webhook: cfg,
		Metrics: metrics.New(prometheus.NewRegistry()),
		Logger:  logger.NewWithWriter("error", io.Discard),
		DB:      db,
	})
	t.Cleanup(h.Close)

	return h, db
}

// allCapabilities declares a phone-like surface.
var allCapabilities = []aog.Capability{
	{Name: "actions.capability.SCREEN_OUTPUT"},
	{Name: "actions.capability.AUDIO_OUTPUT"},
	{Name: "actions.capability.WEB_BROWSER"},
}

func buildRequest(intent, query string, caps []aog.Capability) *aog.WebhookRequest {
	return &aog.WebhookRequest{
		Conversation: &aog.Conversation{ConversationID: "conv-test"},
		Inputs: []aog.Input{
			{
				Intent:    intent,
				RawInputs: []aog.RawInput{{InputType: "KEYBOARD", Query: query}},
			},
		},
		Surface: &aog.Surface{Capabilities: caps},
	}
}

func postWebhook(t *testing.T, h *Handler, req any) (*httptest.ResponseRecorder, *aog.WebhookResponse) {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Handle(c)

	if w.Code != http.StatusOK {
		return w, nil
	}
	var resp aog.WebhookResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return w, &resp
}

func promptText(t *testing.T, resp *aog.WebhookResponse) string {
	t.Helper()

	var items []aog.Item
	switch {
	case resp.FinalResponse != nil:
		items = resp.FinalResponse.RichResponse.Items
	case len(resp.ExpectedInputs) > 0:
		items = resp.ExpectedInputs[0].InputPrompt.RichInitialPrompt.Items
	}
	for _, item := range items {
		if item.SimpleResponse != nil {
			return item.SimpleResponse.DisplayText
		}
	}
	t.Fatal("no simple response found in payload")
	return ""
}

func TestHandle_BadJSON(t *testing.T) {
	h, _ := newTestHandler(t, testWebhookConfig())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte("{not json")))

	h.Handle(c)
	// Handle sets the status via c.Status, which gin buffers until the
	// engine finalizes the response; flush it so the recorder sees it.
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandle_MainIntent(t *testing.T) {
	h, _ := newTestHandler(t, testWebhookConfig())

	w, resp := postWebhook(t, h, buildRequest(aog.IntentMain, "talk to my app", allCapabilities))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if !resp.ExpectUserResponse {
		t.Error("welcome turn must stay open")
	}
	want := "I can show you basic cards, lists, and more on your phone and smart display."
	if got := promptText(t, resp); got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
	if len(resp.ExpectedInputs[0].InputPrompt.RichInitialPrompt.Suggestions) == 0 {
		t.Error("welcome turn should carry suggestion chips")
	}
}

func TestHandle_TextIntent_BasicCard(t *testing.T) {
	h, _ := newTestHandler(t, testWebhookConfig())

	_, resp := postWebhook(t, h, buildRequest(aog.IntentText, "basic card", allCapabilities))

	items := resp.ExpectedInputs[0].InputPrompt.RichInitialPrompt.Items
	if len(items) != 3 {
		t.Fatalf("rich items = %d, want 3", len(items))
	}
	if items[1].BasicCard == nil {
		t.Error("second item should be the basic card")
	}
}

func TestHandle_ScreenGate_AppliesToEveryIntent(t *testing.T) {
	h, _ := newTestHandler(t, testWebhookConfig())

	speaker := []aog.Capability{{Name: "actions.capability.AUDIO_OUTPUT"}}
	gate := "Hi there! Sorry, I'm afraid you'll have to switch to a screen device " +
		"or select the phone surface in the simulator."

	for _, intent := range []string{aog.IntentMain, aog.IntentText, aog.IntentOption, aog.IntentMediaStatus} {
		_, resp := postWebhook(t, h, buildRequest(intent, "basic card", speaker))
		if !resp.ExpectUserResponse {
			t.Errorf("%s: gated turn must stay open", intent)
		}
		if got := promptText(t, resp); got != gate {
			t.Errorf("%s: prompt = %q, want screen gate", intent, got)
		}
	}
}

func TestHandle_OptionIntent(t *testing.T) {
	h, _ := newTestHandler(t, testWebhookConfig())

	req := buildRequest(aog.IntentOption, "Item #2", allCapabilities)
	req.Inputs[0].Arguments = []aog.Argument{
		{Name: "OPTION", TextValue: "googlePay"},
	}

	_, resp := postWebhook(t, h, req)

	if got, want := promptText(t, resp), "You selected Google Pay!"; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
	if len(resp.ExpectedInputs[0].InputPrompt.RichInitialPrompt.Suggestions) == 0 {
		t.Error("selection acknowledgement should carry suggestion chips")
	}
}

func TestHandle_MediaStatusIntent(t *testing.T) {
	h, _ := newTestHandler(t, testWebhookConfig())

	req := buildRequest(aog.IntentMediaStatus, "", allCapabilities)
	req.Inputs[0].Arguments = []aog.Argument{
		{
			Name: "MEDIA_STATUS",
			Extension: &aog.ArgumentStatus{
				Type:   "type.googleapis.com/google.actions.v2.MediaStatus",
				Status: aog.MediaStatusFinished,
			},
		},
	}

	_, resp := postWebhook(t, h, req)

	if got, want := promptText(t, resp), "Hope you enjoyed the tunes!"; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestHandle_CancelIntent(t *testing.T) {
	h, _ := newTestHandler(t, testWebhookConfig())

	_, resp := postWebhook(t, h, buildRequest(aog.IntentCancel, "", allCapabilities))

	if resp.ExpectUserResponse {
		t.Error("cancel turn must close the conversation")
	}
	if resp.FinalResponse == nil {
		t.Fatal("cancel turn needs a final response")
	}
	if got, want := promptText(t, resp), "Okay see you later!"; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestHandle_RecordsTurn(t *testing.T) {
	h, db := newTestHandler(t, testWebhookConfig())

	postWebhook(t, h, buildRequest(aog.IntentText, "table", allCapabilities))

	count, err := db.CountTurns(context.Background())
	if err != nil {
		t.Fatalf("CountTurns() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountTurns() = %d, want 1", count)
	}

	conv, err := db.CountConversationTurns(context.Background(), "conv-test")
	if err != nil {
		t.Fatalf("CountConversationTurns() failed: %v", err)
	}
	if conv != 1 {
		t.Errorf("CountConversationTurns(conv-test) = %d, want 1", conv)
	}
}

func TestHandle_ConversationRateLimit(t *testing.T) {
	cfg := testWebhookConfig()
	cfg.ConvRateLimitBurst = 1.0
	cfg.ConvRateLimitRefillPerSec = 0.001
	h, _ := newTestHandler(t, cfg)

	w, _ := postWebhook(t, h, buildRequest(aog.IntentText, "list", allCapabilities))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	w, resp := postWebhook(t, h, buildRequest(aog.IntentText, "list", allCapabilities))
	if w.Code != http.StatusOK {
		t.Fatalf("second request status = %d, want 200", w.Code)
	}
	if !resp.ExpectUserResponse {
		t.Error("rate-limited turn should stay open")
	}
	got := promptText(t, resp)
	want := "You're sending requests a little too quickly. Give me a moment and try again."
	if got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestHandle_MissingConversationID(t *testing.T) {
	h, db := newTestHandler(t, testWebhookConfig())

	req := buildRequest(aog.IntentText, "carousel", allCapabilities)
	req.Conversation = nil

	w, _ := postWebhook(t, h, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	// The synthesized conversation ID still lands in the turn log
	count, err := db.CountTurns(context.Background())
	if err != nil {
		t.Fatalf("CountTurns() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountTurns() = %d, want 1", count)
	}
}

func TestHandle_RecordsTurnWhenRequestContextCanceled(t *testing.T) {
	h, db := newTestHandler(t, testWebhookConfig())

	body, err := json.Marshal(buildRequest(aog.IntentText, "list", allCapabilities))
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body)).WithContext(ctx)
	c.Request.Header.Set("Content-Type", "application/json")

	h.Handle(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	n, err := db.CountTurns(context.Background())
	if err != nil {
		t.Fatalf("CountTurns() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("turn count = %d, want 1; a dropped client must not abort recording", n)
	}
}

func TestHandle_TerminalTurnLogsConversationLength(t *testing.T) {
	var buf bytes.Buffer

	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	h := NewHandler(HandlerConfig{
		Webhook: testWebhookConfig(),
		Metrics: metrics.New(prometheus.NewRegistry()),
		Logger:  logger.NewWithWriter("info", &buf),
		DB:      db,
	})
	t.Cleanup(h.Close)

	postWebhook(t, h, buildRequest(aog.IntentText, "list", allCapabilities))
	postWebhook(t, h, buildRequest(aog.IntentText, "normal bye", allCapabilities))

	if !strings.Contains(buf.String(), `"conversation_turns":2`) {
		t.Errorf("terminal turn log missing conversation length:\n%s", buf.String())
	}
}
