// Package aog models the conversation-webhook JSON exchanged with the
// assistant platform. The platform ships no Go SDK, so the request and
// response shapes are declared by hand and kept to the fields this service
// reads and writes.
package aog

import "strings"

// Intents delivered to the webhook.
const (
	IntentMain        = "actions.intent.MAIN"
	IntentText        = "actions.intent.TEXT"
	IntentOption      = "actions.intent.OPTION"
	IntentMediaStatus = "actions.intent.MEDIA_STATUS"
	IntentCancel      = "actions.intent.CANCEL"
)

// capabilityPrefix namespaces every declared surface capability.
const capabilityPrefix = "actions.capability."

// MediaStatusFinished is the extension status reported when playback ends.
const MediaStatusFinished = "FINISHED"

// WebhookRequest is the inbound turn event.
type WebhookRequest struct {
	User         *User         `json:"user,omitempty"`
	Conversation *Conversation `json:"conversation,omitempty"`
	Inputs       []Input       `json:"inputs"`
	Surface      *Surface      `json:"surface,omitempty"`
	IsInSandbox  bool          `json:"isInSandbox,omitempty"`
}

// User identifies the platform user. Only the locale is of interest here.
type User struct {
	Locale string `json:"locale,omitempty"`
}

// Conversation carries the platform's conversation identity and lifecycle.
type Conversation struct {
	ConversationID    string `json:"conversationId,omitempty"`
	Type              string `json:"type,omitempty"`
	ConversationToken string `json:"conversationToken,omitempty"`
}

// Input is one resolved intent with its raw user utterances and arguments.
type Input struct {
	Intent    string     `json:"intent"`
	RawInputs []RawInput `json:"rawInputs,omitempty"`
	Arguments []Argument `json:"arguments,omitempty"`
}

// RawInput is the user's utterance as the platform transcribed it.
type RawInput struct {
	InputType string `json:"inputType,omitempty"`
	Query     string `json:"query,omitempty"`
}

// Argument is a typed intent parameter, e.g. the OPTION selection key or the
// MEDIA_STATUS progress report.
type Argument struct {
	Name      string          `json:"name"`
	RawText   string          `json:"rawText,omitempty"`
	TextValue string          `json:"textValue,omitempty"`
	Extension *ArgumentStatus `json:"extension,omitempty"`
}

// ArgumentStatus is the extension payload of status-style arguments.
type ArgumentStatus struct {
	Type   string `json:"@type,omitempty"`
	Status string `json:"status,omitempty"`
}

// Surface describes the requesting device.
type Surface struct {
	Capabilities []Capability `json:"capabilities,omitempty"`
}

// Capability is a single declared surface feature.
type Capability struct {
	Name string `json:"name"`
}

// Intent returns the intent of the first input, or empty when absent.
func (r *WebhookRequest) Intent() string {
	if len(r.Inputs) == 0 {
		return ""
	}
	return r.Inputs[0].Intent
}

// RawQuery returns the user's raw utterance for this turn.
func (r *WebhookRequest) RawQuery() string {
	if len(r.Inputs) == 0 || len(r.Inputs[0].RawInputs) == 0 {
		return ""
	}
	return r.Inputs[0].RawInputs[0].Query
}

// ConversationID returns the platform conversation identifier, or empty.
func (r *WebhookRequest) ConversationID() string {
	if r.Conversation == nil {
		return ""
	}
	return r.Conversation.ConversationID
}

// CapabilityTokens returns the declared capabilities with the platform
// namespace stripped, ready for conv.Derive.
func (r *WebhookRequest) CapabilityTokens() []string {
	if r.Surface == nil {
		return nil
	}
	tokens := make([]string, 0, len(r.Surface.Capabilities))
	for _, c := range r.Surface.Capabilities {
		tokens = append(tokens, strings.TrimPrefix(c.Name, capabilityPrefix))
	}
	return tokens
}

// argument finds an argument by name across the first input.
func (r *WebhookRequest) argument(name string) *Argument {
	if len(r.Inputs) == 0 {
		return nil
	}
	for i := range r.Inputs[0].Arguments {
		if r.Inputs[0].Arguments[i].Name == name {
			return &r.Inputs[0].Arguments[i]
		}
	}
	return nil
}

// OptionKey returns the selection key echoed back from a list or carousel,
// or empty when the user did not select anything.
func (r *WebhookRequest) OptionKey() string {
	if arg := r.argument("OPTION"); arg != nil {
		return arg.TextValue
	}
	return ""
}

// MediaFinished reports whether the MEDIA_STATUS argument signals completed
// playback.
func (r *WebhookRequest) MediaFinished() bool {
	arg := r.argument("MEDIA_STATUS")
	return arg != nil && arg.Extension != nil && arg.Extension.Status == MediaStatusFinished
}
