package study_test

import (
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// fixture helpers shared by the study tests

var now = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func at(t time.Time) *time.Time { return &t }

func daysFromNow(d int) *time.Time { return at(now.AddDate(0, 0, d)) }

func word(id int64, status models.Status, mutate ...func(*models.Word)) models.Word {
	w := models.Word{
		ID:         id,
		Word:       "w" + string(rune('a'+id%26)),
		Status:     status,
		Interval:   1,
		EaseFactor: 2.5,
		CreatedAt:  now.Add(-time.Duration(100-id) * time.Hour),
	}
	if status != models.StatusNew && status != models.StatusLearning {
		w.TotalReviews = 1
	}
	for _, m := range mutate {
		m(&w)
	}
	return w
}

func ids(words []models.Word) []int64 {
	out := make([]int64, 0, len(words))
	for _, w := range words {
		out = append(out, w.ID)
	}
	return out
}
