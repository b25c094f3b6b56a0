package flashcard

import (
	"fmt"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// ApplyReview runs a full rating event against w.
//
// The quality is validated before anything changes. When the next review date
// had to fall back to one day the updated word is still returned, together
// with an error wrapping ErrInvalidInterval.
func (p Policy) ApplyReview(w models.Word, q Quality, now time.Time) (models.Word, error) {
	if !q.IsValid() {
		return w, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}

	cur := Classify(w)
	next, err := p.ComputeNextState(q, State{
		Interval:           w.Interval,
		EaseFactor:         w.EaseFactor,
		ConsecutiveCorrect: w.ConsecutiveCorrect,
	})
	if err != nil {
		return w, err
	}

	due, dateErr := NextReviewDate(float64(next.Interval), now)

	w.Interval = next.Interval
	w.EaseFactor = next.EaseFactor
	w.ConsecutiveCorrect = next.ConsecutiveCorrect
	w.NextReview = &due
	w.TotalReviews++
	if q.Failing() {
		w.MistakeCount++
	}
	reviewed := now
	w.LastReviewed = &reviewed
	w.Status = p.nextStatus(cur, q)

	return w, dateErr
}

// ApplyReview rates w using DefaultPolicy.
func ApplyReview(w models.Word, q Quality, now time.Time) (models.Word, error) {
	return DefaultPolicy().ApplyReview(w, q, now)
}
