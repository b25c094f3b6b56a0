package study

import (
	"sort"
	"strings"

	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func browse(words []models.Word, opts Options) []models.Word {
	out := make([]models.Word, 0, len(words))
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	for _, w := range words {
		if q == "" || matches(w, q) {
			out = append(out, w)
		}
	}

	switch opts.Sort {
	case SortStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return flashcard.Classify(out[i]).Rank() < flashcard.Classify(out[j]).Rank()
		})
	case SortReviews:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalReviews > out[j].TotalReviews
		})
	case SortActivity:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].LastReviewed, out[j].LastReviewed
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			}
			return a.After(*b)
		})
	default:
		// collators are not safe for concurrent use
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Word, out[j].Word) < 0
		})
	}
	return out
}

func matches(w models.Word, q string) bool {
	for _, field := range []string{w.Word, w.Meaning, w.Sentence, string(flashcard.Classify(w))} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ParseBrowseSort maps a query value onto a BrowseSort, defaulting to SortAlpha.
func ParseBrowseSort(s string) BrowseSort {
	switch BrowseSort(strings.ToLower(strings.TrimSpace(s))) {
	case SortStatus:
		return SortStatus
	case SortReviews:
		return SortReviews
	case SortActivity:
		return SortActivity
	}
	return SortAlpha
}
