package conv

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recognized keywords. Matching is exact after lowercasing and trimming.
const (
	KeywordBasicCard       = "basic card"
	KeywordList            = "list"
	KeywordTable           = "table"
	KeywordMedia           = "media"
	KeywordBrowseCarousel  = "browse carousel"
	KeywordCarousel        = "carousel"
	KeywordNormalAsk       = "normal ask"
	KeywordNormalBye       = "normal bye"
	KeywordByeCard         = "bye card"
	KeywordByeResponse     = "bye response"
	KeywordSuggestions     = "suggestions"
	KeywordSuggestionChips = "suggestion chips"
)

// Image URLs for list and carousel entries.
const (
	imgURLAssistant = "https://storage.googleapis.com/actionsresources/logo_assistant_2x_64dp.png"
	imgURLPay       = "https://storage.googleapis.com/actionsresources/logo_pay_64dp.png"
	imgURLPixel     = "https://storage.googleapis.com/madebygoog/v1/Pixel/Pixel_ColorPicker/Pixel_Device_Angled_Black-720w.png"
	imgURLHome      = "https://lh3.googleusercontent.com/Nu3a6F80WfixUqf_ec_vgXy_c0-0r4VLJRXjVFF_X_CIilEu8B9fT35qyTEj_PEsKw"

	imgURLAssistantSmall = "https://www.gstatic.com/images/branding/product/2x/assistant_48dp.png"
	imgURLPaySmall       = "https://www.gstatic.com/images/branding/product/2x/pay_48dp.png"
	imgURLAssistantLarge = "https://www.gstatic.com/images/branding/product/2x/assistant_64dp.png"
	imgURLPayLarge       = "https://www.gstatic.com/images/branding/product/2x/pay_64dp.png"

	mediaURLJazz      = "https://storage.googleapis.com/automotive-media/Jazz_In_Paris.mp3"
	mediaURLAlbumArt  = "https://storage.googleapis.com/automotive-media/album_art.jpg"
	assistantHomeURL  = "https://assistant.google.com/"
	payPhysicalDevURL = "https://developers.google.com/actions/transactions/physical/dev-guide-physical-gpay"
)

// builder assembles the static response payload for one keyword. Builders are
// pure: the snapshot only drives secondary capability gating.
type builder func(Snapshot) Turn

// catalogue maps every recognized keyword to its builder. The map is populated
// once at init and read-only afterwards.
var catalogue = map[string]builder{
	KeywordBasicCard:       buildBasicCard,
	KeywordList:            buildList,
	KeywordTable:           buildTable,
	KeywordMedia:           buildMedia,
	KeywordBrowseCarousel:  buildBrowseCarousel,
	KeywordCarousel:        buildCarousel,
	KeywordNormalAsk:       buildNormalAsk,
	KeywordNormalBye:       buildNormalBye,
	KeywordByeCard:         buildByeCard,
	KeywordByeResponse:     buildByeResponse,
	KeywordSuggestions:     buildSuggestions,
	KeywordSuggestionChips: buildSuggestions,
}

// chipKeywords is the subset of keywords offered back to the user as
// suggestion chips after each open turn.
var chipKeywords = []string{
	KeywordBasicCard,
	KeywordBrowseCarousel,
	KeywordCarousel,
	KeywordList,
	KeywordMedia,
	KeywordSuggestions,
	KeywordTable,
}

// intentSuggestions holds the title-cased chip labels, computed once at init.
var intentSuggestions []string

func init() {
	titler := cases.Title(language.English)
	intentSuggestions = make([]string, len(chipKeywords))
	for i, kw := range chipKeywords {
		intentSuggestions[i] = titler.String(kw)
	}
}

// Chips returns a fresh copy of the suggestion-chip labels so callers cannot
// mutate the shared list.
func Chips() []string {
	out := make([]string, len(intentSuggestions))
	copy(out, intentSuggestions)
	return out
}

// chipsWithout returns the chip labels with one label removed.
func chipsWithout(label string) []string {
	out := make([]string, 0, len(intentSuggestions))
	for _, chip := range intentSuggestions {
		if chip != label {
			out = append(out, chip)
		}
	}
	return out
}

// Welcome is the opening turn for a new conversation.
func Welcome() Turn {
	const greeting = "I can show you basic cards, lists, and more " +
		"on your phone and smart display."
	return Turn{
		Variants:    []Variant{SpokenVariant(greeting, greeting)},
		Suggestions: Chips(),
	}
}

func buildNormalAsk(Snapshot) Turn {
	return Turn{
		Variants: []Variant{TextVariant("Ask me to show you a list, carousel, or basic card.")},
	}
}

func buildSuggestions(Snapshot) Turn {
	return Turn{
		Variants: []Variant{
			TextVariant("This is a simple response for suggestions."),
			LinkOutVariant("Suggestion Link", assistantHomeURL),
		},
	}
}

func buildBasicCard(Snapshot) Turn {
	cardText := "This is a basic card.  Text in a basic card can include \"quotes\" and\n" +
		"    most other unicode characters including emoji \U0001F4F1.  Basic cards also support\n" +
		"    some markdown formatting like *emphasis* or _italics_, **strong** or\n" +
		"    __bold__, and ***bold itallic*** or ___strong emphasis___ as well as other\n" +
		"    things like line  \nbreaks"
	return Turn{
		Variants: []Variant{
			TextVariant("This is the first simple response for a basic card."),
			CardVariant(BasicCard{
				Title:    "Title: this is a title",
				Subtitle: "This is a subtitle",
				Text:     cardText,
				Image:    &Image{URL: imgURLAssistant, Alt: "Image alternate text"},
				Buttons:  []Button{{Title: "This is a button", URL: assistantHomeURL}},
			}),
			SpokenVariant("This is the second simple response.", "This is the 2nd simple response."),
		},
	}
}

func buildList(Snapshot) Turn {
	return Turn{
		Variants: []Variant{
			TextVariant("This is a simple response for a list."),
			ListVariant(ListSelect{
				Title: "List Title",
				Items: []SelectItem{
					{
						Key:         SelectionGoogleAssistant,
						Title:       "Item #1",
						Description: "Description of Item #1",
						Synonyms:    []string{"Assistant", "Google Assistant"},
						Image:       &Image{URL: imgURLAssistantSmall, Alt: "Google Assistant logo"},
					},
					{
						Key:         SelectionGooglePay,
						Title:       "Item #2",
						Description: "Description of Item #2",
						Synonyms:    []string{"Google Home Assistant", "Assistant on the Google Home"},
						Image:       &Image{URL: imgURLPaySmall, Alt: "Google Pay logo"},
					},
					{
						Key:         SelectionGooglePixel,
						Title:       "Item #3",
						Description: "Description of Item #3",
						Synonyms:    []string{"Pixel", "Google Pixel", "Pixel phone"},
						Image:       &Image{URL: imgURLPixel, Alt: "Google Pixel phone"},
					},
					{
						Key:         SelectionGoogleHome,
						Title:       "Item #4",
						Description: "Description of Item #4",
						Synonyms:    []string{"Home", "Google Home"},
						Image:       &Image{URL: imgURLHome, Alt: "Google Home"},
					},
				},
			}),
		},
	}
}

func buildCarousel(Snapshot) Turn {
	return Turn{
		Variants: []Variant{
			TextVariant("This is a simple response for a carousel."),
			CarouselVariant(CarouselSelect{
				Items: []SelectItem{
					{
						Key:         SelectionGoogleAssistant,
						Title:       "Item #1",
						Description: "Description of Item #1",
						Synonyms:    []string{"Assistant", "Google Assistant"},
						Image:       &Image{URL: imgURLAssistant, Alt: "Google Assistant logo"},
					},
					{
						Key:         SelectionGooglePay,
						Title:       "Item #2",
						Description: "Description of Item #2",
						Synonyms:    []string{"Transactions", "Google Payments"},
						Image:       &Image{URL: imgURLPay, Alt: "Google Pay logo"},
					},
					{
						Key:         SelectionGooglePixel,
						Title:       "Item #3",
						Description: "Description of Item #3",
						Synonyms:    []string{"Pixel", "Google Pixel phone"},
						Image:       &Image{URL: imgURLPixel, Alt: "Google Pixel phone"},
					},
					{
						Key:         SelectionGoogleHome,
						Title:       "Item #4",
						Description: "Description of Item #4",
						Synonyms:    []string{"Google Home"},
						Image:       &Image{URL: imgURLHome, Alt: "Google Home"},
					},
				},
			}),
		},
	}
}

func buildBrowseCarousel(snap Snapshot) Turn {
	if !snap.HasWebBrowser {
		// The chip for this feature is filtered out: it cannot succeed on
		// this surface, so offering it again would loop the user.
		return Turn{
			Variants:    []Variant{TextVariant("I'm sorry, browse carousel isn't currently supported on smart display")},
			Suggestions: chipsWithout("Browse Carousel"),
		}
	}
	return Turn{
		Variants: []Variant{
			TextVariant(`This is an example of a "Browse Carousel"`),
			BrowseVariant(BrowseCarousel{
				Items: []BrowseItem{
					{
						Title:       "Item #1",
						URL:         assistantHomeURL,
						Description: "Description of Item #1",
						Footer:      "Item 1 footer",
						Image:       &Image{URL: imgURLAssistantLarge, Alt: "Google Assistant logo"},
					},
					{
						Title:       "Item #2",
						URL:         payPhysicalDevURL,
						Description: "Description of Item #2",
						Footer:      "Item 2 footer",
						Image:       &Image{URL: imgURLPayLarge, Alt: "Google Pay logo"},
					},
				},
			}),
		},
	}
}

func buildTable(Snapshot) Turn {
	return Turn{
		Variants: []Variant{
			TextVariant("You can include table data like this"),
			TableVariant(Table{
				Dividers: true,
				Columns:  []string{"Basic Plan", "Mid-tier Plan", "Premium Plan"},
				Rows: [][]string{
					{"row 1 item 1", "row 1 item 2", "row 1 item 3"},
					{"row 2 item 1", "row 2 item 2", "row 2 item 3"},
				},
			}),
		},
	}
}

func buildMedia(snap Snapshot) Turn {
	if !snap.HasAudioPlayback {
		return Turn{
			Variants: []Variant{TextVariant("Sorry, this device does not support audio playback.")},
			Terminal: true,
		}
	}
	return Turn{
		Variants: []Variant{
			TextVariant("This is the first simple response for a media response"),
			MediaVariant(Media{
				Name:        "Jazz in Paris",
				URL:         mediaURLJazz,
				Description: "A funky Jazz tune",
				Icon:        &Image{URL: mediaURLAlbumArt, Alt: "Media icon"},
			}),
		},
	}
}

func buildNormalBye(Snapshot) Turn {
	return Turn{
		Variants: []Variant{TextVariant("Okay see you later!")},
		Terminal: true,
	}
}

func buildByeCard(Snapshot) Turn {
	return Turn{
		Variants: []Variant{
			TextVariant("Goodbye, World!"),
			CardVariant(BasicCard{Text: "This is a goodbye card."}),
		},
		Terminal: true,
	}
}

func buildByeResponse(Snapshot) Turn {
	return Turn{
		Variants: []Variant{SpokenVariant("Okay see you later", "OK see you later!")},
		Terminal: true,
	}
}
