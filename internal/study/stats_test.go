package study_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/study"
)

func TestComputeStats(t *testing.T) {
	words := []models.Word{
		word(1, models.StatusNew),
		word(2, ""),
		word(3, models.StatusLearning),
		word(4, models.StatusReview, func(w *models.Word) { w.NextReview = daysFromNow(-2) }),
		word(5, models.StatusReview, func(w *models.Word) { w.NextReview = at(now.Add(-time.Hour)) }),
		word(6, models.StatusLearned, func(w *models.Word) { w.NextReview = daysFromNow(5) }),
		word(7, models.StatusLearned, func(w *models.Word) { w.NextReview = daysFromNow(-1) }),
	}

	got := study.ComputeStats(words, now)

	assert.Equal(t, models.WordStats{
		Total:    7,
		New:      2,
		Learning: 1,
		Review:   2,
		Learned:  2,
		Due:      3,
		Overdue:  2,
	}, got)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, models.WordStats{}, study.ComputeStats(nil, now))
}
