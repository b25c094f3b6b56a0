package models

import "time"

// Status is the coarse learning stage of a word.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusReview   Status = "review"
	StatusLearned  Status = "learned"
)

// Rank orders statuses from least to most advanced. Unknown statuses sort last.
func (s Status) Rank() int {
	switch s {
	case StatusNew, "":
		return 0
	case StatusLearning:
		return 1
	case StatusReview:
		return 2
	case StatusLearned:
		return 3
	default:
		return 4
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReview, StatusLearned:
		return true
	}
	return false
}

type Word struct {
	ID                 int64      `json:"id" db:"id"`
	Word               string     `json:"word" db:"word"`
	Meaning            string     `json:"meaning" db:"meaning"`
	Sentence           string     `json:"sentence" db:"sentence"`
	Status             Status     `json:"status" db:"status"`
	Interval           int        `json:"interval" db:"interval_days"`
	EaseFactor         float64    `json:"ease_factor" db:"ease_factor"`
	ConsecutiveCorrect int        `json:"consecutive_correct" db:"consecutive_correct"`
	NextReview         *time.Time `json:"next_review" db:"next_review"`
	TotalReviews       int        `json:"total_reviews" db:"total_reviews"`
	MistakeCount       int        `json:"mistake_count" db:"mistake_count"`
	LastReviewed       *time.Time `json:"last_reviewed" db:"last_reviewed"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// WordFilter narrows repository listings. Zero values mean "no constraint".
type WordFilter struct {
	Statuses []Status
	Query    string
	Limit    int
	Offset   int
}

type ReviewHistory struct {
	ID          int64     `json:"id" db:"id"`
	WordID      int64     `json:"word_id" db:"word_id"`
	Quality     int       `json:"quality" db:"quality"`
	TimeSeconds float64   `json:"time_seconds" db:"time_seconds"`
	Interval    int       `json:"interval" db:"interval_days"`
	EaseFactor  float64   `json:"ease_factor" db:"ease_factor"`
	ReviewedAt  time.Time `json:"reviewed_at" db:"reviewed_at"`
}

// LearnedEvent is recorded each time a word enters the learned state.
type LearnedEvent struct {
	ID        int64     `json:"id" db:"id"`
	WordID    int64     `json:"word_id" db:"word_id"`
	Word      string    `json:"word" db:"word"`
	LearnedAt time.Time `json:"learned_at" db:"learned_at"`
}
