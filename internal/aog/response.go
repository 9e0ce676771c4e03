package aog

// Wire constants for the response envelope.
const (
	optionValueSpecType = "type.googleapis.com/google.actions.v2.OptionValueSpec"
	mediaTypeAudio      = "AUDIO"
	imageDisplayDefault = "DEFAULT"
)

// WebhookResponse is the outbound turn payload.
type WebhookResponse struct {
	ExpectUserResponse bool            `json:"expectUserResponse"`
	ExpectedInputs     []ExpectedInput `json:"expectedInputs,omitempty"`
	FinalResponse      *FinalResponse  `json:"finalResponse,omitempty"`
}

// ExpectedInput prompts the user and declares which intents may come next.
type ExpectedInput struct {
	InputPrompt     InputPrompt      `json:"inputPrompt"`
	PossibleIntents []ExpectedIntent `json:"possibleIntents"`
}

// InputPrompt wraps the rich prompt shown for an open turn.
type InputPrompt struct {
	RichInitialPrompt RichResponse `json:"richInitialPrompt"`
}

// ExpectedIntent names an intent the platform should resolve next, with
// optional value data for selection intents.
type ExpectedIntent struct {
	Intent         string           `json:"intent"`
	InputValueData *OptionValueSpec `json:"inputValueData,omitempty"`
}

// OptionValueSpec carries a list or carousel for the OPTION intent.
type OptionValueSpec struct {
	Type           string          `json:"@type"`
	ListSelect     *ListSelect     `json:"listSelect,omitempty"`
	CarouselSelect *CarouselSelect `json:"carouselSelect,omitempty"`
}

// FinalResponse closes the conversation with a last rich response.
type FinalResponse struct {
	RichResponse RichResponse `json:"richResponse"`
}

// RichResponse is the ordered item list plus suggestion chips.
type RichResponse struct {
	Items             []Item             `json:"items"`
	Suggestions       []Suggestion       `json:"suggestions,omitempty"`
	LinkOutSuggestion *LinkOutSuggestion `json:"linkOutSuggestion,omitempty"`
}

// Item is a one-of over the rich response element types.
type Item struct {
	SimpleResponse *SimpleResponse `json:"simpleResponse,omitempty"`
	BasicCard      *BasicCard      `json:"basicCard,omitempty"`
	TableCard      *TableCard      `json:"tableCard,omitempty"`
	MediaResponse  *MediaResponse  `json:"mediaResponse,omitempty"`
	CarouselBrowse *CarouselBrowse `json:"carouselBrowse,omitempty"`
}

// SimpleResponse is spoken and displayed text.
type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech,omitempty"`
	DisplayText  string `json:"displayText,omitempty"`
}

// BasicCard is the card element.
type BasicCard struct {
	Title               string       `json:"title,omitempty"`
	Subtitle            string       `json:"subtitle,omitempty"`
	FormattedText       string       `json:"formattedText,omitempty"`
	Image               *Image       `json:"image,omitempty"`
	Buttons             []CardButton `json:"buttons,omitempty"`
	ImageDisplayOptions string       `json:"imageDisplayOptions,omitempty"`
}

// CardButton is a link button on a basic card.
type CardButton struct {
	Title         string        `json:"title"`
	OpenURLAction OpenURLAction `json:"openUrlAction"`
}

// OpenURLAction opens a URL when the element is tapped.
type OpenURLAction struct {
	URL string `json:"url"`
}

// Image is a rendered image with accessibility text.
type Image struct {
	URL               string `json:"url"`
	AccessibilityText string `json:"accessibilityText,omitempty"`
}

// TableCard is the table element.
type TableCard struct {
	ColumnProperties []ColumnProperty `json:"columnProperties,omitempty"`
	Rows             []TableRow       `json:"rows,omitempty"`
}

// ColumnProperty is one table column header.
type ColumnProperty struct {
	Header string `json:"header"`
}

// TableRow is one table row.
type TableRow struct {
	Cells        []TableCell `json:"cells"`
	DividerAfter bool        `json:"dividerAfter,omitempty"`
}

// TableCell is one table cell.
type TableCell struct {
	Text string `json:"text"`
}

// MediaResponse plays audio on capable surfaces.
type MediaResponse struct {
	MediaType    string        `json:"mediaType"`
	MediaObjects []MediaObject `json:"mediaObjects"`
}

// MediaObject is one playable track.
type MediaObject struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ContentURL  string `json:"contentUrl"`
	Icon        *Image `json:"icon,omitempty"`
}

// CarouselBrowse shows web links horizontally on browser-capable surfaces.
type CarouselBrowse struct {
	Items []BrowseCarouselItem `json:"items"`
}

// BrowseCarouselItem is one browse carousel tile.
type BrowseCarouselItem struct {
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Footer        string        `json:"footer,omitempty"`
	Image         *Image        `json:"image,omitempty"`
	OpenURLAction OpenURLAction `json:"openUrlAction"`
}

// ListSelect is the selectable list prompt.
type ListSelect struct {
	Title string           `json:"title,omitempty"`
	Items []SelectListItem `json:"items"`
}

// CarouselSelect is the selectable carousel prompt.
type CarouselSelect struct {
	Items []SelectListItem `json:"items"`
}

// SelectListItem is one selectable entry keyed by OptionInfo.
type SelectListItem struct {
	OptionInfo  OptionInfo `json:"optionInfo"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       *Image     `json:"image,omitempty"`
}

// OptionInfo identifies an entry for the later selection event.
type OptionInfo struct {
	Key      string   `json:"key"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Suggestion is one suggestion chip.
type Suggestion struct {
	Title string `json:"title"`
}

// LinkOutSuggestion is a chip that leaves the conversation to a URL.
type LinkOutSuggestion struct {
	DestinationName string `json:"destinationName"`
	URL             string `json:"url"`
}
