package conv

import "strings"

// screenGatePrompt is returned whenever the surface lacks a screen. The gate
// is unconditional: it applies to every input, media events included, so
// audio-only surfaces always get the same redirect. The turn stays open so
// the user can switch surfaces and continue.
const screenGatePrompt = "Hi there! Sorry, I'm afraid you'll have to switch to a " +
	"screen device or select the phone surface in the simulator."

// Route selects a catalogue entry for the raw text input under the given
// capability snapshot. It is pure: identical input yields identical output,
// and matching is case-insensitive after trimming.
//
// Open turns carry the full suggestion-chip list unless the builder already
// narrowed it; terminal turns never carry suggestions.
func Route(rawInput string, snap Snapshot) Turn {
	if !snap.HasScreen {
		return ScreenGate()
	}

	key := strings.ToLower(strings.TrimSpace(rawInput))
	build, ok := catalogue[key]
	if !ok {
		build = buildNormalAsk
	}

	turn := build(snap)
	if !turn.Terminal && turn.Suggestions == nil {
		turn.Suggestions = Chips()
	}
	return turn
}

// ScreenGate returns the redirect turn served to screenless surfaces. The
// turn stays open with no suggestions so the user can switch surfaces and
// continue.
func ScreenGate() Turn {
	return Turn{Variants: []Variant{TextVariant(screenGatePrompt)}}
}

// RateLimited produces the open turn served when a conversation sends turns
// faster than its token bucket refills.
func RateLimited() Turn {
	return Turn{
		Variants: []Variant{TextVariant("You're sending requests a little too quickly. " +
			"Give me a moment and try again.")},
	}
}

// RouteKeyword reports the catalogue keyword the input resolves to, with
// "fallback" for unrecognized input. Used for logging and metrics labels.
func RouteKeyword(rawInput string) string {
	key := strings.ToLower(strings.TrimSpace(rawInput))
	if _, ok := catalogue[key]; ok {
		return key
	}
	return "fallback"
}

// MediaStatus produces the follow-up turn after the platform reports media
// playback progress.
func MediaStatus(finished bool) Turn {
	text := "Unknown media status received."
	if finished {
		text = "Hope you enjoyed the tunes!"
	}
	return Turn{
		Variants:    []Variant{TextVariant(text)},
		Suggestions: Chips(),
	}
}

// Cancel produces the terminal turn for an explicit conversation exit.
func Cancel() Turn {
	return Turn{
		Variants: []Variant{TextVariant("Okay see you later!")},
		Terminal: true,
	}
}
