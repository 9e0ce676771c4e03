package conv

import "testing"

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"google_assistant", "googleAssistant", "You selected Google Assistant!"},
		{"google_pay", "googlePay", "You selected Google Pay!"},
		{"google_pixel", "googlePixel", "You selected Google Pixel!"},
		{"google_home", "googleHome", "You selected Google Home!"},
		{"unknown_key", "unknown_key", "You selected an unknown item from the list or carousel"},
		{"case_mismatch_is_unknown", "GOOGLEPIXEL", "You selected an unknown item from the list or carousel"},
		{"absent_key", "", "You did not select any item from the list or carousel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSelection(tt.key); got != tt.want {
				t.Errorf("ResolveSelection(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSelectionOutcome(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"googleAssistant", "known"},
		{"googleHome", "known"},
		{"mystery", "unknown"},
		{"", "none"},
	}

	for _, tt := range tests {
		if got := SelectionOutcome(tt.key); got != tt.want {
			t.Errorf("SelectionOutcome(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// Every key the catalogue offers in a list or carousel must resolve to a
// proper acknowledgement, never the unknown-item fallback.
func TestResolveSelection_CoversOfferedKeys(t *testing.T) {
	snap := Snapshot{HasScreen: true, HasAudioPlayback: true, HasWebBrowser: true}

	var offered []SelectionKey
	for _, v := range buildList(snap).Variants {
		if v.Kind == KindList {
			for _, item := range v.List.Items {
				offered = append(offered, item.Key)
			}
		}
	}
	for _, v := range buildCarousel(snap).Variants {
		if v.Kind == KindCarousel {
			for _, item := range v.Carousel.Items {
				offered = append(offered, item.Key)
			}
		}
	}

	if len(offered) == 0 {
		t.Fatal("no selectable items found in list/carousel builders")
	}
	for _, key := range offered {
		got := ResolveSelection(string(key))
		if got == msgUnknownSelection || got == msgNoSelection {
			t.Errorf("offered key %q resolves to fallback %q", key, got)
		}
	}
}
