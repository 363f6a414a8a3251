package feed

import (
	"time"

	"github.com/lysyi3m/rss-drafter/app/extract"
)

// Filterer applies the freshness window and the minimum-content quality
// gate. The word count of the HTML-stripped bundled content is a cheap
// proxy for "teaser-only" entries that are not worth a draft.
type Filterer struct {
	window   time.Duration
	minWords int
}

func NewFilterer(windowHours, minWords int) *Filterer {
	return &Filterer{
		window:   time.Duration(windowHours) * time.Hour,
		minWords: minWords,
	}
}

func (f *Filterer) Run(item Item, now time.Time) RejectReason {
	if item.PublishedAt == nil {
		return ReasonNoDate
	}

	if now.Sub(*item.PublishedAt) > f.window {
		return ReasonTooOld
	}

	text := extract.CleanText(extract.StripHTML(item.RawContentHTML))
	if extract.WordCount(text) < f.minWords {
		return ReasonTooShort
	}

	return ReasonNone
}
