package study

import (
	"time"

	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/models"
)

// Dueness buckets a word by how urgently it needs review.
// Lower values are more urgent.
type Dueness int

const (
	Overdue Dueness = iota
	DueToday
	NotDue
)

func (d Dueness) String() string {
	switch d {
	case Overdue:
		return "overdue"
	case DueToday:
		return "due"
	case NotDue:
		return "not_due"
	default:
		return "unknown"
	}
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayNumber counts calendar days since the epoch for the date of t as seen in
// loc, so DST shifts never turn one day into 23 or 25 hours.
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// OverdueDays is the number of calendar days between the day a word was due
// and the day of now. Zero for unscheduled words, negative when not yet due.
func OverdueDays(w models.Word, now time.Time) int {
	if w.NextReview == nil {
		return 0
	}
	loc := now.Location()
	return int(dayNumber(now, loc) - dayNumber(*w.NextReview, loc))
}

// DuenessOf classifies w relative to now using calendar days in now's location.
func DuenessOf(w models.Word, now time.Time) Dueness {
	if w.NextReview != nil && OverdueDays(w, now) > 0 {
		return Overdue
	}
	if flashcard.IsDue(w.NextReview, now) {
		return DueToday
	}
	return NotDue
}
