package conv

// SelectionKey is the stable identifier attached to list/carousel entries and
// echoed back by the platform when the user picks one. The enumeration is
// closed: every item the catalogue offers uses one of these keys, and the
// resolver below covers all of them.
type SelectionKey string

const (
	SelectionGoogleAssistant SelectionKey = "googleAssistant"
	SelectionGooglePay       SelectionKey = "googlePay"
	SelectionGooglePixel     SelectionKey = "googlePixel"
	SelectionGoogleHome      SelectionKey = "googleHome"
)

// Selection acknowledgement messages.
const (
	msgUnknownSelection = "You selected an unknown item from the list or carousel"
	msgNoSelection      = "You did not select any item from the list or carousel"
)

var selectionResponses = map[SelectionKey]string{
	SelectionGoogleAssistant: "You selected Google Assistant!",
	SelectionGooglePay:       "You selected Google Pay!",
	SelectionGooglePixel:     "You selected Google Pixel!",
	SelectionGoogleHome:      "You selected Google Home!",
}

// ResolveSelection maps a selected-option key to its canned acknowledgement.
// It is total: an unrecognized key and an absent key are normal outcomes, not
// errors.
func ResolveSelection(optionKey string) string {
	if optionKey == "" {
		return msgNoSelection
	}
	if resp, ok := selectionResponses[SelectionKey(optionKey)]; ok {
		return resp
	}
	return msgUnknownSelection
}

// SelectionOutcome classifies a selected-option key as "known", "unknown", or
// "none". Used for logging and metrics labels.
func SelectionOutcome(optionKey string) string {
	if optionKey == "" {
		return "none"
	}
	if _, ok := selectionResponses[SelectionKey(optionKey)]; ok {
		return "known"
	}
	return "unknown"
}
