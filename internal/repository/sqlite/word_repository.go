package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

var wordColumns = []string{
	"id", "word", "meaning", "sentence", "status", "interval_days", "ease_factor",
	"consecutive_correct", "next_review", "total_reviews", "mistake_count",
	"last_reviewed", "created_at",
}

const insertWordSQL = `
INSERT INTO words (
    word, meaning, sentence, status, interval_days, ease_factor, consecutive_correct,
    next_review, total_reviews, mistake_count, last_reviewed, created_at
) VALUES (
    :word, :meaning, :sentence, :status, :interval_days, :ease_factor, :consecutive_correct,
    :next_review, :total_reviews, :mistake_count, :last_reviewed, :created_at
)`

type wordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sqlx.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting word: id=%d", id)

	query, args, err := sqlBuilder.Select(wordColumns...).From("words").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var w models.Word
	if err := r.db.GetContext(ctx, &w, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found: id=%d", id)
		} else {
			log.Error("failed to get word: %v", err)
		}
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words: statuses=%v, query=%q, limit=%d, offset=%d",
		filter.Statuses, filter.Query, filter.Limit, filter.Offset)

	query := sqlBuilder.Select(wordColumns...).From("words")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses)+1)
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
			if s == models.StatusNew {
				statuses = append(statuses, "")
			}
		}
		query = query.Where(squirrel.Eq{"status": statuses})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"word": pattern},
			squirrel.Like{"meaning": pattern},
			squirrel.Like{"sentence": pattern},
		})
	}

	query = query.OrderBy("id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		// SQLite needs a LIMIT before OFFSET.
		if filter.Limit <= 0 {
			query = query.Limit(uint64(1<<62 - 1))
		}
		query = query.Offset(uint64(filter.Offset))
	}

	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	words := []models.Word{}
	if err := r.db.SelectContext(ctx, &words, q, args...); err != nil {
		log.Error("failed to list words: %v", err)
		return nil, err
	}
	log.Debug("found %d words", len(words))
	return words, nil
}

func (r *wordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		logger.FromContext(ctx).WithPrefix("word_repo").Error("failed to count words: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: %s", w.Word)

	res, err := r.db.NamedExecContext(ctx, insertWordSQL, normalize(w))
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get word id: %v", err)
		return 0, err
	}
	log.Debug("word inserted: id=%d", id)
	return id, nil
}

func (r *wordRepository) InsertBatch(ctx context.Context, words []models.Word) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("batch inserting %d words", len(words))

	if len(words) == 0 {
		return nil, nil
	}

	var insertedIDs []int64
	err := tx(ctx, r.db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, insertWordSQL+"\nON CONFLICT(word) DO NOTHING")
		if err != nil {
			log.Error("failed to prepare batch insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, w := range words {
			res, err := stmt.ExecContext(ctx, normalize(w))
			if err != nil {
				log.Error("failed to insert word %q: %v", w.Word, err)
				return err
			}
			if n, err := res.RowsAffected(); err != nil || n == 0 {
				log.Debug("skipping duplicate word: %s", w.Word)
				continue
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			insertedIDs = append(insertedIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("batch insert completed, %d new words inserted", len(insertedIDs))
	return insertedIDs, nil
}

func (r *wordRepository) Update(ctx context.Context, w models.Word) error {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("updating word: id=%d, status=%s, interval=%d, ease=%.2f", w.ID, w.Status, w.Interval, w.EaseFactor)

	res, err := r.db.NamedExecContext(ctx, `
UPDATE words
SET word = :word, meaning = :meaning, sentence = :sentence, status = :status,
    interval_days = :interval_days, ease_factor = :ease_factor, consecutive_correct = :consecutive_correct,
    next_review = :next_review, total_reviews = :total_reviews, mistake_count = :mistake_count,
    last_reviewed = :last_reviewed
WHERE id = :id
`, normalize(w))
	if err != nil {
		log.Error("failed to update word: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("word not found for update: id=%d", w.ID)
		return sql.ErrNoRows
	}
	return nil
}

func (r *wordRepository) ResetAll(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Info("resetting all words")

	query, args, err := sqlBuilder.Update("words").SetMap(map[string]any{
		"status":              string(models.StatusNew),
		"interval_days":       1,
		"ease_factor":         2.5,
		"consecutive_correct": 0,
		"next_review":         nil,
		"total_reviews":       0,
		"mistake_count":       0,
		"last_reviewed":       nil,
	}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to reset words: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("reset %d words", n)
	return n, nil
}

func normalize(w models.Word) models.Word {
	w.NextReview = utcPtr(w.NextReview)
	w.LastReviewed = utcPtr(w.LastReviewed)
	w.CreatedAt = utc(w.CreatedAt)
	return w
}
