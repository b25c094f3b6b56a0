package flashcard

import (
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// NewWord returns a word in its initial scheduling state.
func (p Policy) NewWord(word, meaning, sentence string, now time.Time) models.Word {
	w := models.Word{
		Word:      word,
		Meaning:   meaning,
		Sentence:  sentence,
		CreatedAt: now,
	}
	return p.ResetWord(w)
}

// ResetWord wipes every scheduling field back to the initial state.
// Identity and content are kept.
func (p Policy) ResetWord(w models.Word) models.Word {
	w.Status = models.StatusNew
	w.Interval = 1
	w.EaseFactor = p.InitialEase
	w.ConsecutiveCorrect = 0
	w.TotalReviews = 0
	w.MistakeCount = 0
	w.NextReview = nil
	w.LastReviewed = nil
	return w
}

// ResetWord resets w using DefaultPolicy.
func ResetWord(w models.Word) models.Word {
	return DefaultPolicy().ResetWord(w)
}

// Classify derives the bucket a word belongs to without mutating it.
func Classify(w models.Word) models.Status {
	switch w.Status {
	case models.StatusLearning:
		return models.StatusLearning
	case models.StatusNew, "":
		if w.TotalReviews == 0 {
			return models.StatusNew
		}
		// rated but never labelled
		return models.StatusLearning
	}
	return w.Status
}

// MarkSeen records the first exposure of a word.
func (p Policy) MarkSeen(w models.Word) models.Word {
	if p.Transition == TransitionOnView && Classify(w) == models.StatusNew {
		w.Status = models.StatusLearning
	}
	return w
}

// nextStatus is the status after rating a word currently in bucket cur.
func (p Policy) nextStatus(cur models.Status, q Quality) models.Status {
	if cur == models.StatusNew && p.Transition == TransitionOnRating {
		return models.StatusLearning
	}
	if q.Failing() {
		return models.StatusReview
	}
	return models.StatusLearned
}

// LearnedEdge reports whether a rating moved a word into the learned bucket.
// Ratings that keep a word learned do not count.
func LearnedEdge(before, after models.Word) bool {
	return Classify(before) != models.StatusLearned && Classify(after) == models.StatusLearned
}
