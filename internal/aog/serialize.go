package aog

import (
	"github.com/conv-showcase/assistant-webhook-go/internal/conv"
)

// BuildResponse serializes a routed turn into the platform envelope.
//
// Rich response rules enforced here: the item list opens with a simple
// response (the catalogue guarantees one), list and carousel prompts ride on
// the expected OPTION intent rather than the item list, and terminal turns
// emit a finalResponse with expectUserResponse false.
func BuildResponse(turn conv.Turn) *WebhookResponse {
	rich := RichResponse{Items: make([]Item, 0, len(turn.Variants))}
	var option *OptionValueSpec

	for _, v := range turn.Variants {
		switch v.Kind {
		case conv.KindSimpleText:
			rich.Items = append(rich.Items, Item{SimpleResponse: &SimpleResponse{
				TextToSpeech: v.Text.Speech,
				DisplayText:  v.Text.Display,
			}})
		case conv.KindBasicCard:
			rich.Items = append(rich.Items, Item{BasicCard: buildBasicCard(v.Card)})
		case conv.KindTable:
			rich.Items = append(rich.Items, Item{TableCard: buildTableCard(v.Table)})
		case conv.KindMedia:
			rich.Items = append(rich.Items, Item{MediaResponse: &MediaResponse{
				MediaType: mediaTypeAudio,
				MediaObjects: []MediaObject{{
					Name:        v.Media.Name,
					Description: v.Media.Description,
					ContentURL:  v.Media.URL,
					Icon:        buildImage(v.Media.Icon),
				}},
			}})
		case conv.KindBrowseCarousel:
			rich.Items = append(rich.Items, Item{CarouselBrowse: buildCarouselBrowse(v.Browse)})
		case conv.KindList:
			option = &OptionValueSpec{
				Type: optionValueSpecType,
				ListSelect: &ListSelect{
					Title: v.List.Title,
					Items: buildSelectItems(v.List.Items),
				},
			}
		case conv.KindCarousel:
			option = &OptionValueSpec{
				Type:           optionValueSpecType,
				CarouselSelect: &CarouselSelect{Items: buildSelectItems(v.Carousel.Items)},
			}
		case conv.KindLinkOut:
			rich.LinkOutSuggestion = &LinkOutSuggestion{
				DestinationName: v.LinkOut.Name,
				URL:             v.LinkOut.URL,
			}
		}
	}

	for _, chip := range turn.Suggestions {
		rich.Suggestions = append(rich.Suggestions, Suggestion{Title: chip})
	}

	if turn.Terminal {
		return &WebhookResponse{
			ExpectUserResponse: false,
			FinalResponse:      &FinalResponse{RichResponse: rich},
		}
	}

	intents := []ExpectedIntent{{Intent: IntentText}}
	if option != nil {
		intents = []ExpectedIntent{{Intent: IntentOption, InputValueData: option}}
	}

	return &WebhookResponse{
		ExpectUserResponse: true,
		ExpectedInputs: []ExpectedInput{{
			InputPrompt:     InputPrompt{RichInitialPrompt: rich},
			PossibleIntents: intents,
		}},
	}
}

func buildImage(img *conv.Image) *Image {
	if img == nil {
		return nil
	}
	return &Image{URL: img.URL, AccessibilityText: img.Alt}
}

func buildBasicCard(card *conv.BasicCard) *BasicCard {
	out := &BasicCard{
		Title:         card.Title,
		Subtitle:      card.Subtitle,
		FormattedText: card.Text,
		Image:         buildImage(card.Image),
	}
	if out.Image != nil {
		out.ImageDisplayOptions = imageDisplayDefault
	}
	for _, b := range card.Buttons {
		out.Buttons = append(out.Buttons, CardButton{
			Title:         b.Title,
			OpenURLAction: OpenURLAction{URL: b.URL},
		})
	}
	return out
}

func buildTableCard(table *conv.Table) *TableCard {
	out := &TableCard{}
	for _, col := range table.Columns {
		out.ColumnProperties = append(out.ColumnProperties, ColumnProperty{Header: col})
	}
	for _, row := range table.Rows {
		cells := make([]TableCell, 0, len(row))
		for _, cell := range row {
			cells = append(cells, TableCell{Text: cell})
		}
		out.Rows = append(out.Rows, TableRow{Cells: cells, DividerAfter: table.Dividers})
	}
	return out
}

func buildCarouselBrowse(browse *conv.BrowseCarousel) *CarouselBrowse {
	out := &CarouselBrowse{Items: make([]BrowseCarouselItem, 0, len(browse.Items))}
	for _, item := range browse.Items {
		out.Items = append(out.Items, BrowseCarouselItem{
			Title:         item.Title,
			Description:   item.Description,
			Footer:        item.Footer,
			Image:         buildImage(item.Image),
			OpenURLAction: OpenURLAction{URL: item.URL},
		})
	}
	return out
}

func buildSelectItems(items []conv.SelectItem) []SelectListItem {
	out := make([]SelectListItem, 0, len(items))
	for _, item := range items {
		out = append(out, SelectListItem{
			OptionInfo:  OptionInfo{Key: string(item.Key), Synonyms: item.Synonyms},
			Title:       item.Title,
			Description: item.Description,
			Image:       buildImage(item.Image),
		})
	}
	return out
}
