package models

import "time"

// WordStats is the per-bucket breakdown of a word collection at one instant.
type WordStats struct {
	Total    int `json:"total" db:"total"`
	New      int `json:"new" db:"new_count"`
	Learning int `json:"learning" db:"learning_count"`
	Review   int `json:"review" db:"review_count"`
	Learned  int `json:"learned" db:"learned_count"`
	Due      int `json:"due" db:"due_count"`
	Overdue  int `json:"overdue" db:"overdue_count"`
}

// StatsSnapshot is a WordStats recorded for a calendar day.
type StatsSnapshot struct {
	Day          string    `json:"day" db:"day"`
	LearnedToday int       `json:"learned_today" db:"learned_today"`
	ReviewsToday int       `json:"reviews_today" db:"reviews_today"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	WordStats
}
