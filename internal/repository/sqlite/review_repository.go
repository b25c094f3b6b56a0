package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type reviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sqlx.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, h models.ReviewHistory) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: word_id=%d, quality=%d, time_seconds=%.1f", h.WordID, h.Quality, h.TimeSeconds)

	h.ReviewedAt = utc(h.ReviewedAt)
	res, err := r.db.NamedExecContext(ctx, `
INSERT INTO review_history (word_id, quality, time_seconds, interval_days, ease_factor, reviewed_at)
VALUES (:word_id, :quality, :time_seconds, :interval_days, :ease_factor, :reviewed_at)
`, h)
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *reviewRepository) ListForWord(ctx context.Context, wordID int64, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: word_id=%d, limit=%d", wordID, limit)

	if limit <= 0 {
		limit = 50
	}
	reviews := []models.ReviewHistory{}
	err := r.db.SelectContext(ctx, &reviews, `
SELECT id, word_id, quality, time_seconds, interval_days, ease_factor, reviewed_at
FROM review_history
WHERE word_id = ?
ORDER BY reviewed_at DESC, id DESC
LIMIT ?
`, wordID, limit)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM review_history WHERE reviewed_at >= ?`, utc(since))
	if err != nil {
		logger.FromContext(ctx).WithPrefix("review_repo").Error("failed to count reviews: %v", err)
		return 0, err
	}
	return n, nil
}
