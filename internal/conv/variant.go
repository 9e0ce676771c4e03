package conv

// VariantKind discriminates the presentation shapes a turn can emit.
type VariantKind int

const (
	KindSimpleText VariantKind = iota
	KindBasicCard
	KindList
	KindCarousel
	KindBrowseCarousel
	KindTable
	KindMedia
	KindLinkOut
)

// String returns the wire-friendly name of the kind, used in logs and metrics.
func (k VariantKind) String() string {
	switch k {
	case KindSimpleText:
		return "simple_text"
	case KindBasicCard:
		return "basic_card"
	case KindList:
		return "list"
	case KindCarousel:
		return "carousel"
	case KindBrowseCarousel:
		return "browse_carousel"
	case KindTable:
		return "table"
	case KindMedia:
		return "media"
	case KindLinkOut:
		return "link_out"
	default:
		return "unknown"
	}
}

// Image references a static asset shown inside cards and items.
type Image struct {
	URL string
	Alt string
}

// Button is a link button attached to a basic card.
type Button struct {
	Title string
	URL   string
}

// SimpleText is a plain spoken/displayed response.
type SimpleText struct {
	Speech  string
	Display string
}

// BasicCard is a rich card with optional image and buttons.
type BasicCard struct {
	Title    string
	Subtitle string
	Text     string
	Image    *Image
	Buttons  []Button
}

// SelectItem is one entry of a list or carousel. Key must be a member of the
// SelectionKey enumeration so a later selection event can be resolved.
type SelectItem struct {
	Key         SelectionKey
	Title       string
	Description string
	Synonyms    []string
	Image       *Image
}

// ListSelect presents selectable items vertically.
type ListSelect struct {
	Title string
	Items []SelectItem
}

// CarouselSelect presents selectable items horizontally.
type CarouselSelect struct {
	Items []SelectItem
}

// BrowseItem is one entry of a browse carousel; it opens a URL rather than
// producing a selection event.
type BrowseItem struct {
	Title       string
	URL         string
	Description string
	Footer      string
	Image       *Image
}

// BrowseCarousel presents web links on browser-capable surfaces.
type BrowseCarousel struct {
	Items []BrowseItem
}

// Table presents static tabular data.
type Table struct {
	Columns  []string
	Rows     [][]string
	Dividers bool
}

// Media describes a playable audio object.
type Media struct {
	Name        string
	URL         string
	Description string
	Icon        *Image
}

// LinkOut is a suggestion chip that leaves the conversation to a URL.
type LinkOut struct {
	Name string
	URL  string
}

// Variant is the tagged union over every presentation shape. Exactly one
// payload field is non-nil, matching Kind.
type Variant struct {
	Kind VariantKind

	Text     *SimpleText
	Card     *BasicCard
	List     *ListSelect
	Carousel *CarouselSelect
	Browse   *BrowseCarousel
	Table    *Table
	Media    *Media
	LinkOut  *LinkOut
}

// TextVariant builds a SimpleText variant with identical speech and display.
func TextVariant(text string) Variant {
	return Variant{Kind: KindSimpleText, Text: &SimpleText{Speech: text, Display: text}}
}

// SpokenVariant builds a SimpleText variant with distinct speech and display.
func SpokenVariant(speech, display string) Variant {
	return Variant{Kind: KindSimpleText, Text: &SimpleText{Speech: speech, Display: display}}
}

// CardVariant wraps a BasicCard.
func CardVariant(card BasicCard) Variant {
	return Variant{Kind: KindBasicCard, Card: &card}
}

// ListVariant wraps a ListSelect.
func ListVariant(list ListSelect) Variant {
	return Variant{Kind: KindList, List: &list}
}

// CarouselVariant wraps a CarouselSelect.
func CarouselVariant(c CarouselSelect) Variant {
	return Variant{Kind: KindCarousel, Carousel: &c}
}

// BrowseVariant wraps a BrowseCarousel.
func BrowseVariant(b BrowseCarousel) Variant {
	return Variant{Kind: KindBrowseCarousel, Browse: &b}
}

// TableVariant wraps a Table.
func TableVariant(t Table) Variant {
	return Variant{Kind: KindTable, Table: &t}
}

// MediaVariant wraps a Media object.
func MediaVariant(m Media) Variant {
	return Variant{Kind: KindMedia, Media: &m}
}

// LinkOutVariant wraps a LinkOut suggestion.
func LinkOutVariant(name, url string) Variant {
	return Variant{Kind: KindLinkOut, LinkOut: &LinkOut{Name: name, URL: url}}
}

// Turn is the complete routed output for one request/response exchange.
// Terminal turns close the conversation and never carry suggestions.
type Turn struct {
	Variants    []Variant
	Suggestions []string
	Terminal    bool
}
