package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type learnedEventRepository struct {
	db *sqlx.DB
}

// NewLearnedEventRepository creates a new LearnedEventRepository implementation
func NewLearnedEventRepository(db *sqlx.DB) repository.LearnedEventRepository {
	return &learnedEventRepository{db: db}
}

func (r *learnedEventRepository) Insert(ctx context.Context, e models.LearnedEvent) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("learned_repo")
	log.Debug("recording learned event: word_id=%d", e.WordID)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO learned_events (word_id, learned_at) VALUES (?, ?)`, e.WordID, utc(e.LearnedAt))
	if err != nil {
		log.Error("failed to insert learned event: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *learnedEventRepository) List(ctx context.Context, limit int) ([]models.LearnedEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("learned_repo")
	log.Debug("listing learned events: limit=%d", limit)

	query := sqlBuilder.
		Select("e.id", "e.word_id", "w.word", "e.learned_at").
		From("learned_events e").
		Join("words w ON w.id = e.word_id").
		OrderBy("e.learned_at DESC", "e.id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	events := []models.LearnedEvent{}
	if err := r.db.SelectContext(ctx, &events, q, args...); err != nil {
		log.Error("failed to list learned events: %v", err)
		return nil, err
	}
	return events, nil
}

func (r *learnedEventRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM learned_events WHERE learned_at >= ?`, utc(since))
	if err != nil {
		logger.FromContext(ctx).WithPrefix("learned_repo").Error("failed to count learned events: %v", err)
		return 0, err
	}
	return n, nil
}
