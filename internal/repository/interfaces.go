package repository

import (
	"context"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// WordRepository handles word data access
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	// InsertBatch skips words whose text already exists (case-insensitive)
	// and returns the ids of the rows it created.
	InsertBatch(ctx context.Context, words []models.Word) ([]int64, error)
	Update(ctx context.Context, word models.Word) error
	ResetAll(ctx context.Context) (int64, error)
}

// ReviewRepository handles review history data access
type ReviewRepository interface {
	Insert(ctx context.Context, review models.ReviewHistory) (int64, error)
	ListForWord(ctx context.Context, wordID int64, limit int) ([]models.ReviewHistory, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// LearnedEventRepository handles learned event data access
type LearnedEventRepository interface {
	Insert(ctx context.Context, event models.LearnedEvent) (int64, error)
	List(ctx context.Context, limit int) ([]models.LearnedEvent, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// SnapshotRepository handles daily stats snapshot data access
type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot models.StatsSnapshot) error
	List(ctx context.Context, days int) ([]models.StatsSnapshot, error)
}
