package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/testutil"
	"github.com/vytor/wordflash/internal/testutil/mocks"
)

func TestMarkRated_DropsClosedWindows(t *testing.T) {
	ctx := context.Background()
	clock := &testutil.Clock{Now: time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)}
	words := new(mocks.MockWordRepository)
	reviews := new(mocks.MockReviewRepository)
	learned := new(mocks.MockLearnedEventRepository)

	for id := int64(1); id <= 3; id++ {
		w := flashcard.DefaultPolicy().NewWord("lucid", "clear", "", clock.Now.AddDate(0, 0, -3))
		w.ID = id
		words.On("Get", ctx, id).Return(&w, nil).Once()
	}
	words.On("Update", ctx, mock.Anything).Return(nil)
	reviews.On("Insert", ctx, mock.Anything).Return(int64(1), nil)
	learned.On("Insert", ctx, mock.Anything).Return(int64(1), nil)

	svc := NewWordService(words, reviews, learned, WordServiceConfig{
		Debounce: time.Second,
		Clock:    clock.Time,
	}).(*wordService)

	_, err := svc.Review(ctx, 1, flashcard.Good, 0)
	require.NoError(t, err)
	clock.Advance(200 * time.Millisecond)
	_, err = svc.Review(ctx, 2, flashcard.Good, 0)
	require.NoError(t, err)
	assert.Len(t, svc.lastRated, 2)

	clock.Advance(5 * time.Second)
	_, err = svc.Review(ctx, 3, flashcard.Good, 0)
	require.NoError(t, err)

	assert.Len(t, svc.lastRated, 1)
	assert.Contains(t, svc.lastRated, int64(3))
	words.AssertExpectations(t)
}

func TestKeyedMutex_LockAllExcludesHolders(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock(1)

	acquired := make(chan struct{})
	go func() {
		release := k.LockAll()
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("LockAll acquired while an id was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("LockAll did not acquire after release")
	}
	assert.Empty(t, k.locks)
}
