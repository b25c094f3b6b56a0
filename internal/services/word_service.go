package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/study"
	"github.com/vytor/wordflash/internal/vocab"
)

// WordService handles rating, viewing and selecting words
type WordService interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	Browse(ctx context.Context, query string, sort study.BrowseSort, limit int) ([]models.Word, error)
	View(ctx context.Context, id int64) (*models.Word, error)
	Review(ctx context.Context, id int64, quality flashcard.Quality, timeSeconds float64) (*ReviewOutcome, error)
	History(ctx context.Context, id int64, limit int) ([]models.ReviewHistory, error)
	Reset(ctx context.Context, id int64) (*models.Word, error)
	ResetAll(ctx context.Context) (int64, error)
	WorkingSet(ctx context.Context, mode study.Mode, limit int) ([]models.Word, error)
	Stats(ctx context.Context) (*models.WordStats, error)
	ImportEntries(ctx context.Context, jobID string, entries []vocab.Entry) (int, error)
}

// ReviewOutcome is the word after a rating and whether it just became learned.
type ReviewOutcome struct {
	Word    models.Word `json:"word"`
	Learned bool        `json:"learned"`
}

// WordServiceConfig tunes a WordService. Zero fields take defaults.
type WordServiceConfig struct {
	Policy         flashcard.Policy
	Debounce       time.Duration
	FutureFraction float64
	Location       *time.Location
	Clock          func() time.Time
}

type wordService struct {
	words    repository.WordRepository
	reviews  repository.ReviewRepository
	learned  repository.LearnedEventRepository
	policy   flashcard.Policy
	debounce time.Duration
	fraction float64
	loc      *time.Location
	clock    func() time.Time

	locks     *keyedMutex
	ratedMu   sync.Mutex
	lastRated map[int64]time.Time
}

// NewWordService creates a new WordService
func NewWordService(
	words repository.WordRepository,
	reviews repository.ReviewRepository,
	learned repository.LearnedEventRepository,
	cfg WordServiceConfig,
) WordService {
	if cfg.Policy == (flashcard.Policy{}) {
		cfg.Policy = flashcard.DefaultPolicy()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &wordService{
		words:     words,
		reviews:   reviews,
		learned:   learned,
		policy:    cfg.Policy,
		debounce:  cfg.Debounce,
		fraction:  cfg.FutureFraction,
		loc:       cfg.Location,
		clock:     cfg.Clock,
		locks:     newKeyedMutex(),
		lastRated: make(map[int64]time.Time),
	}
}

// now is the current instant in the configured location, so calendar-day
// comparisons follow the user's day boundaries.
func (s *wordService) now() time.Time {
	return s.clock().In(s.loc)
}

func (s *wordService) load(ctx context.Context, id int64) (*models.Word, error) {
	w, err := s.words.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("word", id)
		}
		logger.FromContext(ctx).Error("failed to load word: id=%d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	if w == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return w, nil
}

func (s *wordService) all(ctx context.Context) ([]models.Word, error) {
	words, err := s.words.List(ctx, models.WordFilter{})
	if err != nil {
		logger.FromContext(ctx).Error("failed to list words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return words, nil
}

func (s *wordService) Get(ctx context.Context, id int64) (*models.Word, error) {
	logger.FromContext(ctx).Debug("getting word: id=%d", id)
	return s.load(ctx, id)
}

func (s *wordService) Browse(ctx context.Context, query string, sort study.BrowseSort, limit int) ([]models.Word, error) {
	log := logger.FromContext(ctx)
	log.Debug("browsing words: query=%q, sort=%s, limit=%d", query, sort, limit)

	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return study.BuildWorkingSet(words, study.ModeBrowse, s.now(), study.Options{
		Limit: limit,
		Query: query,
		Sort:  sort,
	}), nil
}

func (s *wordService) View(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx)
	log.Debug("viewing word: id=%d", id)

	unlock := s.locks.Lock(id)
	defer unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	seen := s.policy.MarkSeen(*w)
	if seen.Status == w.Status {
		return w, nil
	}
	if err := s.words.Update(ctx, seen); err != nil {
		log.Error("failed to mark word seen: id=%d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("word moved to %s on first view: id=%d", seen.Status, id)
	return &seen, nil
}

func (s *wordService) Review(ctx context.Context, id int64, quality flashcard.Quality, timeSeconds float64) (*ReviewOutcome, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing word: id=%d, quality=%s", id, quality)

	if !quality.IsValid() {
		return nil, errors.NewInvalidQualityError(fmt.Errorf("%w: %d", flashcard.ErrInvalidQuality, int(quality)))
	}
	if math.IsNaN(timeSeconds) || math.IsInf(timeSeconds, 0) {
		return nil, errors.NewValidationError("time_seconds", "must be a finite number")
	}
	if timeSeconds < 0 {
		return nil, errors.NewValidationError("time_seconds", "cannot be negative")
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	now := s.now()
	if s.debounced(id, now) {
		log.Warn("rating ignored, word rated too recently: id=%d", id)
		return nil, errors.NewRateLimitedError(id)
	}

	before, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	after, err := s.policy.ApplyReview(*before, quality, now)
	if err != nil {
		switch {
		case errors.Is(err, flashcard.ErrInvalidInterval):
			log.Warn("scheduling fell back to one day: id=%d: %v", id, err)
		case errors.Is(err, flashcard.ErrInvalidQuality):
			return nil, errors.NewInvalidQualityError(err)
		default:
			log.Error("failed to apply review: id=%d: %v", id, err)
			return nil, errors.NewInternalError(err)
		}
	}

	if err := s.words.Update(ctx, after); err != nil {
		log.Error("failed to update word: id=%d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	s.markRated(id, now)

	log.Debug("applied review: interval=%d days, ease_factor=%.2f, status=%s", after.Interval, after.EaseFactor, after.Status)

	// History and events are best effort once the word itself is saved.
	if _, err := s.reviews.Insert(ctx, models.ReviewHistory{
		WordID:      id,
		Quality:     int(quality),
		TimeSeconds: timeSeconds,
		Interval:    after.Interval,
		EaseFactor:  after.EaseFactor,
		ReviewedAt:  now,
	}); err != nil {
		log.Warn("failed to store review history: id=%d: %v", id, err)
	}

	learned := flashcard.LearnedEdge(*before, after)
	if learned {
		log.Info("word learned: id=%d, word=%s", id, after.Word)
		if _, err := s.learned.Insert(ctx, models.LearnedEvent{
			WordID:    id,
			Word:      after.Word,
			LearnedAt: now,
		}); err != nil {
			log.Warn("failed to record learned event: id=%d: %v", id, err)
		}
	}

	return &ReviewOutcome{Word: after, Learned: learned}, nil
}

func (s *wordService) debounced(id int64, now time.Time) bool {
	if s.debounce <= 0 {
		return false
	}
	s.ratedMu.Lock()
	defer s.ratedMu.Unlock()
	last, ok := s.lastRated[id]
	return ok && now.Sub(last) < s.debounce
}

// markRated starts the debounce window of id and drops windows that have
// already closed.
func (s *wordService) markRated(id int64, now time.Time) {
	if s.debounce <= 0 {
		return
	}
	s.ratedMu.Lock()
	defer s.ratedMu.Unlock()
	for other, last := range s.lastRated {
		if now.Sub(last) >= s.debounce {
			delete(s.lastRated, other)
		}
	}
	s.lastRated[id] = now
}

func (s *wordService) forgetRated(ids ...int64) {
	s.ratedMu.Lock()
	defer s.ratedMu.Unlock()
	if len(ids) == 0 {
		s.lastRated = make(map[int64]time.Time)
		return
	}
	for _, id := range ids {
		delete(s.lastRated, id)
	}
}

func (s *wordService) History(ctx context.Context, id int64, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting review history: id=%d, limit=%d", id, limit)

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	history, err := s.reviews.ListForWord(ctx, id, limit)
	if err != nil {
		log.Error("failed to list review history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}

func (s *wordService) Reset(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx)
	log.Debug("resetting word: id=%d", id)

	unlock := s.locks.Lock(id)
	defer unlock()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	reset := s.policy.ResetWord(*w)
	if err := s.words.Update(ctx, reset); err != nil {
		log.Error("failed to reset word: id=%d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	s.forgetRated(id)

	log.Info("word reset: id=%d", id)
	return &reset, nil
}

func (s *wordService) ResetAll(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.LockAll()
	defer unlock()

	n, err := s.words.ResetAll(ctx)
	if err != nil {
		log.Error("failed to reset words: %v", err)
		return 0, errors.NewInternalError(err)
	}
	s.forgetRated()

	log.Info("all words reset: count=%d", n)
	return n, nil
}

func (s *wordService) WorkingSet(ctx context.Context, mode study.Mode, limit int) ([]models.Word, error) {
	log := logger.FromContext(ctx)
	log.Debug("building working set: mode=%s, limit=%d", mode, limit)

	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	fraction := s.fraction
	set := study.BuildWorkingSet(words, mode, s.now(), study.Options{
		Limit:          limit,
		FutureFraction: &fraction,
	})
	log.Debug("working set built: mode=%s, size=%d", mode, len(set))
	return set, nil
}

func (s *wordService) Stats(ctx context.Context) (*models.WordStats, error) {
	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	stats := study.ComputeStats(words, s.now())
	return &stats, nil
}

func (s *wordService) ImportEntries(ctx context.Context, jobID string, entries []vocab.Entry) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing entries: job_id=%s, count=%d", jobID, len(entries))

	now := s.now()
	words := make([]models.Word, 0, len(entries))
	for _, e := range entries {
		words = append(words, s.policy.NewWord(e.Word, e.Meaning, e.Sentence, now))
	}

	ids, err := s.words.InsertBatch(ctx, words)
	if err != nil {
		log.Error("failed to insert imported words: %v", err)
		return 0, err
	}
	return len(ids), nil
}
