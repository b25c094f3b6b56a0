package study

import (
	"time"

	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/models"
)

// ComputeStats counts words per bucket in a single pass.
// Due and Overdue only count words that have been rated at least once.
func ComputeStats(words []models.Word, now time.Time) models.WordStats {
	var st models.WordStats
	for _, w := range words {
		st.Total++
		switch flashcard.Classify(w) {
		case models.StatusNew:
			st.New++
		case models.StatusLearning:
			st.Learning++
		case models.StatusReview:
			st.Review++
		case models.StatusLearned:
			st.Learned++
		}

		if w.TotalReviews == 0 {
			continue
		}
		if flashcard.IsDue(w.NextReview, now) {
			st.Due++
		}
		if w.NextReview != nil && OverdueDays(w, now) > 0 {
			st.Overdue++
		}
	}
	return st
}
