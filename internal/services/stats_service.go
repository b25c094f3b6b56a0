package services

import (
	"context"
	"time"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/study"
)

const (
	defaultHistoryDays  = 30
	maxHistoryDays      = 366
	defaultLearnedLimit = 50
)

// StatsService handles statistics-related business logic
type StatsService interface {
	Snapshot(ctx context.Context) (*models.StatsSnapshot, error)
	History(ctx context.Context, days int) ([]models.StatsSnapshot, error)
	LearnedEvents(ctx context.Context, limit int) ([]models.LearnedEvent, error)
}

type statsService struct {
	words     repository.WordRepository
	reviews   repository.ReviewRepository
	learned   repository.LearnedEventRepository
	snapshots repository.SnapshotRepository
	loc       *time.Location
	clock     func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(
	words repository.WordRepository,
	reviews repository.ReviewRepository,
	learned repository.LearnedEventRepository,
	snapshots repository.SnapshotRepository,
	loc *time.Location,
	clock func() time.Time,
) StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &statsService{
		words:     words,
		reviews:   reviews,
		learned:   learned,
		snapshots: snapshots,
		loc:       loc,
		clock:     clock,
	}
}

// Snapshot records today's statistics, replacing an earlier snapshot of the same day.
func (s *statsService) Snapshot(ctx context.Context) (*models.StatsSnapshot, error) {
	log := logger.FromContext(ctx)
	now := s.clock().In(s.loc)
	log.Debug("taking stats snapshot: day=%s", now.Format(time.DateOnly))

	words, err := s.words.List(ctx, models.WordFilter{})
	if err != nil {
		log.Error("failed to list words: %v", err)
		return nil, errors.NewInternalError(err)
	}

	dayStart := study.DayStart(now)
	reviewsToday, err := s.reviews.CountSince(ctx, dayStart)
	if err != nil {
		log.Error("failed to count today's reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	learnedToday, err := s.learned.CountSince(ctx, dayStart)
	if err != nil {
		log.Error("failed to count today's learned words: %v", err)
		return nil, errors.NewInternalError(err)
	}

	snapshot := models.StatsSnapshot{
		Day:          now.Format(time.DateOnly),
		LearnedToday: learnedToday,
		ReviewsToday: reviewsToday,
		CreatedAt:    now,
		WordStats:    study.ComputeStats(words, now),
	}
	if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
		log.Error("failed to store snapshot: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("stats snapshot stored: day=%s, total=%d, learned=%d, reviews_today=%d",
		snapshot.Day, snapshot.Total, snapshot.Learned, snapshot.ReviewsToday)
	return &snapshot, nil
}

func (s *statsService) History(ctx context.Context, days int) ([]models.StatsSnapshot, error) {
	log := logger.FromContext(ctx)
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		return nil, errors.NewValidationError("days", "must be at most 366")
	}
	log.Debug("getting stats history: days=%d", days)

	history, err := s.snapshots.List(ctx, days)
	if err != nil {
		log.Error("failed to list snapshots: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}

func (s *statsService) LearnedEvents(ctx context.Context, limit int) ([]models.LearnedEvent, error) {
	log := logger.FromContext(ctx)
	if limit <= 0 {
		limit = defaultLearnedLimit
	}
	log.Debug("getting learned events: limit=%d", limit)

	events, err := s.learned.List(ctx, limit)
	if err != nil {
		log.Error("failed to list learned events: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return events, nil
}
