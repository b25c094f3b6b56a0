package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new SnapshotRepository implementation
func NewSnapshotRepository(db *sqlx.DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Upsert(ctx context.Context, s models.StatsSnapshot) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("upserting stats snapshot: day=%s, total=%d", s.Day, s.Total)

	query, args, err := sqlBuilder.Insert("stats_snapshots").
		Columns("day", "total", "new_count", "learning_count", "review_count", "learned_count",
			"due_count", "overdue_count", "learned_today", "reviews_today", "created_at").
		Values(s.Day, s.Total, s.New, s.Learning, s.Review, s.Learned,
			s.Due, s.Overdue, s.LearnedToday, s.ReviewsToday, utc(s.CreatedAt)).
		Suffix(`ON CONFLICT(day) DO UPDATE SET
    total = excluded.total,
    new_count = excluded.new_count,
    learning_count = excluded.learning_count,
    review_count = excluded.review_count,
    learned_count = excluded.learned_count,
    due_count = excluded.due_count,
    overdue_count = excluded.overdue_count,
    learned_today = excluded.learned_today,
    reviews_today = excluded.reviews_today,
    created_at = excluded.created_at`).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to upsert snapshot: %v", err)
		return err
	}
	return nil
}

// List returns the most recent snapshots in ascending day order.
func (r *snapshotRepository) List(ctx context.Context, days int) ([]models.StatsSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("listing snapshots: days=%d", days)

	query := sqlBuilder.Select(
		"day", "total", "new_count", "learning_count", "review_count", "learned_count",
		"due_count", "overdue_count", "learned_today", "reviews_today", "created_at",
	).From("stats_snapshots").OrderBy("day DESC")
	if days > 0 {
		query = query.Limit(uint64(days))
	}
	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	snapshots := []models.StatsSnapshot{}
	if err := r.db.SelectContext(ctx, &snapshots, q, args...); err != nil {
		log.Error("failed to list snapshots: %v", err)
		return nil, err
	}
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}
	return snapshots, nil
}
