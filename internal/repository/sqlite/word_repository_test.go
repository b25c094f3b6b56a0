package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/repository/sqlite"
	"github.com/vytor/wordflash/internal/testutil"
)

type WordRepositorySuite struct {
	suite.Suite
	db   *sqlx.DB
	repo repository.WordRepository
}

func (s *WordRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewWordRepository(s.db)
}

func (s *WordRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *WordRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	next := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)

	id, err := s.repo.Insert(ctx, testutil.Word("serendipity", func(w *models.Word) {
		w.Status = models.StatusReview
		w.Interval = 6
		w.EaseFactor = 2.36
		w.ConsecutiveCorrect = 2
		w.NextReview = &next
		w.TotalReviews = 3
		w.MistakeCount = 1
	}))
	s.Require().NoError(err)
	s.Greater(id, int64(0))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal("serendipity", got.Word)
	s.Equal("meaning of serendipity", got.Meaning)
	s.Equal(models.StatusReview, got.Status)
	s.Equal(6, got.Interval)
	s.InDelta(2.36, got.EaseFactor, 1e-9)
	s.Equal(2, got.ConsecutiveCorrect)
	s.Equal(3, got.TotalReviews)
	s.Equal(1, got.MistakeCount)
	s.Require().NotNil(got.NextReview)
	s.True(next.Equal(*got.NextReview))
	s.Nil(got.LastReviewed)
}

func (s *WordRepositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(context.Background(), 999)
	s.ErrorIs(err, sql.ErrNoRows)
}

func (s *WordRepositorySuite) TestInsertDuplicateFails() {
	ctx := context.Background()
	_, err := s.repo.Insert(ctx, testutil.Word("apple"))
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, testutil.Word("Apple"))
	s.Error(err)
}

func (s *WordRepositorySuite) TestInsertBatchSkipsDuplicates() {
	ctx := context.Background()
	_, err := s.repo.Insert(ctx, testutil.Word("apple"))
	s.Require().NoError(err)

	ids, err := s.repo.InsertBatch(ctx, []models.Word{
		testutil.Word("APPLE"),
		testutil.Word("banana"),
		testutil.Word("cherry"),
		testutil.Word("Banana"),
	})
	s.Require().NoError(err)
	s.Len(ids, 2)

	n, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *WordRepositorySuite) TestInsertBatchEmpty() {
	ids, err := s.repo.InsertBatch(context.Background(), nil)
	s.NoError(err)
	s.Empty(ids)
}

func (s *WordRepositorySuite) TestListFilters() {
	ctx := context.Background()
	_, err := s.repo.InsertBatch(ctx, []models.Word{
		testutil.Word("apple"),
		testutil.Word("banana", func(w *models.Word) { w.Status = models.StatusLearning }),
		testutil.Word("cherry", func(w *models.Word) { w.Status = models.StatusLearned; w.Meaning = "a red fruit" }),
		testutil.Word("date", func(w *models.Word) { w.Status = models.StatusReview }),
	})
	s.Require().NoError(err)

	all, err := s.repo.List(ctx, models.WordFilter{})
	s.Require().NoError(err)
	s.Len(all, 4)
	s.Equal("apple", all[0].Word)

	learning, err := s.repo.List(ctx, models.WordFilter{Statuses: []models.Status{models.StatusLearning, models.StatusReview}})
	s.Require().NoError(err)
	s.Len(learning, 2)

	byMeaning, err := s.repo.List(ctx, models.WordFilter{Query: "RED FRUIT"})
	s.Require().NoError(err)
	s.Require().Len(byMeaning, 1)
	s.Equal("cherry", byMeaning[0].Word)

	page, err := s.repo.List(ctx, models.WordFilter{Offset: 1, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("banana", page[0].Word)

	tail, err := s.repo.List(ctx, models.WordFilter{Offset: 3})
	s.Require().NoError(err)
	s.Require().Len(tail, 1)
	s.Equal("date", tail[0].Word)
}

func (s *WordRepositorySuite) TestListEmptyIsNonNil() {
	words, err := s.repo.List(context.Background(), models.WordFilter{})
	s.Require().NoError(err)
	s.NotNil(words)
	s.Empty(words)
}

func (s *WordRepositorySuite) TestUpdate() {
	ctx := context.Background()
	id, err := s.repo.Insert(ctx, testutil.Word("apple"))
	s.Require().NoError(err)

	w, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)

	reviewed := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	next := reviewed.AddDate(0, 0, 1)
	w.Status = models.StatusLearning
	w.TotalReviews = 1
	w.LastReviewed = &reviewed
	w.NextReview = &next
	s.Require().NoError(s.repo.Update(ctx, *w))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(models.StatusLearning, got.Status)
	s.Equal(1, got.TotalReviews)
	s.Require().NotNil(got.LastReviewed)
	s.True(reviewed.Equal(*got.LastReviewed))
}

func (s *WordRepositorySuite) TestUpdateMissingWord() {
	err := s.repo.Update(context.Background(), testutil.Word("ghost", func(w *models.Word) { w.ID = 42 }))
	s.ErrorIs(err, sql.ErrNoRows)
}

func (s *WordRepositorySuite) TestResetAll() {
	ctx := context.Background()
	next := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := s.repo.InsertBatch(ctx, []models.Word{
		testutil.Word("apple", func(w *models.Word) {
			w.Status = models.StatusLearned
			w.Interval = 40
			w.EaseFactor = 1.8
			w.TotalReviews = 9
			w.MistakeCount = 2
			w.NextReview = &next
			w.LastReviewed = &next
		}),
		testutil.Word("banana"),
	})
	s.Require().NoError(err)

	n, err := s.repo.ResetAll(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	words, err := s.repo.List(ctx, models.WordFilter{})
	s.Require().NoError(err)
	for _, w := range words {
		s.Equal(models.StatusNew, w.Status)
		s.Equal(1, w.Interval)
		s.Equal(2.5, w.EaseFactor)
		s.Zero(w.TotalReviews)
		s.Zero(w.MistakeCount)
		s.Nil(w.NextReview)
		s.Nil(w.LastReviewed)
	}
	s.Equal("meaning of apple", words[0].Meaning)
}

func TestWordRepositorySuite(t *testing.T) {
	suite.Run(t, new(WordRepositorySuite))
}
