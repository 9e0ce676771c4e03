// Package conv implements the per-turn conversation core: deriving device
// capabilities, routing text input to the response catalogue, and resolving
// list/carousel selections. Everything here is pure and request-scoped; no
// state survives a turn.
package conv

// Capability tokens declared by the requesting surface.
const (
	CapabilityScreen     = "SCREEN_OUTPUT"
	CapabilityAudio      = "AUDIO_OUTPUT"
	CapabilityWebBrowser = "WEB_BROWSER"
)

// Snapshot holds the device capabilities derived for a single turn.
// It is a value type: compute once per turn, pass by parameter, never mutate.
type Snapshot struct {
	HasScreen        bool
	HasAudioPlayback bool
	HasWebBrowser    bool
}

// Derive computes a Snapshot from the capability tokens declared in the
// incoming request. It is total over any token set, including nil.
func Derive(tokens []string) Snapshot {
	var s Snapshot
	for _, t := range tokens {
		switch t {
		case CapabilityScreen:
			s.HasScreen = true
		case CapabilityAudio:
			s.HasAudioPlayback = true
		case CapabilityWebBrowser:
			s.HasWebBrowser = true
		}
	}
	return s
}
