package study

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/models"
)

// Mode is a study mode; each defines a filter and a total order.
type Mode string

const (
	ModeNew      Mode = "new"
	ModeLearning Mode = "learning"
	ModeReview   Mode = "review"
	ModeLearned  Mode = "learned"
	ModeRandom   Mode = "random"
	ModeBrowse   Mode = "browse"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeNew, ModeLearning, ModeReview, ModeLearned, ModeRandom, ModeBrowse}

// ParseMode resolves a mode name, case-insensitive.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("study: unknown mode %q", s)
}

// BrowseSort is the user-selected order of browse mode.
type BrowseSort string

const (
	SortAlpha    BrowseSort = "alpha"
	SortStatus   BrowseSort = "status"
	SortReviews  BrowseSort = "reviews"
	SortActivity BrowseSort = "activity"
)

// DefaultFutureFraction is the share of not-yet-due words random mode admits.
const DefaultFutureFraction = 0.1

// Options tune BuildWorkingSet. The zero value is usable.
type Options struct {
	// Limit truncates the ordered result when positive.
	Limit int
	// Query filters browse mode (case-insensitive substring).
	Query string
	// Sort selects the browse order; empty means SortAlpha.
	Sort BrowseSort
	// FutureFraction overrides DefaultFutureFraction when set. Zero admits no
	// future words into the weighted part.
	FutureFraction *float64
	// Rand drives random mode. Nil means a generator seeded from now.
	Rand *rand.Rand
}

// BuildWorkingSet filters words for mode and returns them in presentation
// order. The input slice is not modified. Unknown modes and empty input give
// an empty result.
func BuildWorkingSet(words []models.Word, mode Mode, now time.Time, opts Options) []models.Word {
	var out []models.Word
	switch mode {
	case ModeNew:
		out = filterByStatus(words, models.StatusNew)
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case ModeLearning:
		out = filterByStatus(words, models.StatusLearning)
		sortDueFirst(out, now, func(a, b models.Word) int {
			if c := compareInt(OverdueDays(b, now), OverdueDays(a, now)); c != 0 {
				return c
			}
			return compareFloat(a.EaseFactor, b.EaseFactor)
		})
	case ModeReview:
		out = filterByStatus(words, models.StatusReview)
		sortDueFirst(out, now, func(a, b models.Word) int {
			if c := compareInt(b.MistakeCount, a.MistakeCount); c != 0 {
				return c
			}
			return compareFloat(a.EaseFactor, b.EaseFactor)
		})
	case ModeLearned:
		out = filterByStatus(words, models.StatusLearned)
		sortDueFirst(out, now, func(a, b models.Word) int {
			return compareInt(a.Interval, b.Interval)
		})
	case ModeRandom:
		out = randomOrder(words, now, opts)
	case ModeBrowse:
		out = browse(words, opts)
	}

	if out == nil {
		out = []models.Word{}
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func filterByStatus(words []models.Word, status models.Status) []models.Word {
	out := make([]models.Word, 0, len(words))
	for _, w := range words {
		if flashcard.Classify(w) == status {
			out = append(out, w)
		}
	}
	return out
}

// sortDueFirst orders by dueness bucket, then by tie, then by input order.
func sortDueFirst(words []models.Word, now time.Time, tie func(a, b models.Word) int) {
	sort.SliceStable(words, func(i, j int) bool {
		ri, rj := DuenessOf(words[i], now), DuenessOf(words[j], now)
		if ri != rj {
			return ri < rj
		}
		return tie(words[i], words[j]) < 0
	})
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
