package flashcard_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/flashcard"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in   string
		want flashcard.Quality
	}{
		{"0", flashcard.Again},
		{"1", flashcard.Hard},
		{" 2 ", flashcard.Good},
		{"3", flashcard.Easy},
		{"again", flashcard.Again},
		{"HARD", flashcard.Hard},
		{"Good", flashcard.Good},
		{"easy", flashcard.Easy},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := flashcard.ParseQuality(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuality_Invalid(t *testing.T) {
	for _, in := range []string{"", "4", "-1", "perfect", "2.5"} {
		_, err := flashcard.ParseQuality(in)
		assert.True(t, errors.Is(err, flashcard.ErrInvalidQuality), "input %q", in)
	}
}

func TestQualityFromPass(t *testing.T) {
	assert.Equal(t, flashcard.Good, flashcard.QualityFromPass(true))
	assert.Equal(t, flashcard.Again, flashcard.QualityFromPass(false))
}

func TestQuality_Buckets(t *testing.T) {
	assert.True(t, flashcard.Again.Lapse())
	assert.False(t, flashcard.Hard.Lapse())
	assert.True(t, flashcard.Hard.Failing())
	assert.False(t, flashcard.Good.Failing())
	assert.Equal(t, "Quality(7)", flashcard.Quality(7).String())
	assert.Equal(t, "easy", flashcard.Easy.String())
}
