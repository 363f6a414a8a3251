package feed

import (
	"sort"
	"strings"
	"time"
)

const (
	titleBonusMinWords = 4
	titleBonusMaxWords = 12
	titleBonus         = 0.5
)

// Ranker orders candidates by recency and trims to the per-run cap.
// Recency dominates; a small bonus rewards titles in a readable length
// band. The sort is stable so identical input always yields identical
// output, ties falling back to feed order.
type Ranker struct {
	maxPosts int
}

func NewRanker(maxPosts int) *Ranker {
	return &Ranker{maxPosts: maxPosts}
}

func (r *Ranker) Run(items []Item, now time.Time) []Item {
	ranked := make([]Item, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return r.score(ranked[i], now) > r.score(ranked[j], now)
	})

	if r.maxPosts > 0 && len(ranked) > r.maxPosts {
		ranked = ranked[:r.maxPosts]
	}

	return ranked
}

func (r *Ranker) score(item Item, now time.Time) float64 {
	var ageHours float64
	if item.PublishedAt != nil {
		ageHours = now.Sub(*item.PublishedAt).Hours()
		if ageHours < 0 {
			ageHours = 0
		}
	}

	score := 100.0 / (1.0 + ageHours)

	titleWords := len(strings.Fields(item.Title))
	if titleWords >= titleBonusMinWords && titleWords <= titleBonusMaxWords {
		score += titleBonus
	}

	return score
}
