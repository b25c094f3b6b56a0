package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/db"
	"github.com/vytor/wordflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sqlx.DB {
	conn, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	require.NoError(t, db.Migrate(context.Background(), conn))
	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Clock is a settable time source for services under test.
type Clock struct {
	Now time.Time
}

// Time returns the current fake time.
func (c *Clock) Time() time.Time { return c.Now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.Now = c.Now.Add(d) }

// Word builds a new word row with sensible defaults.
func Word(text string, mutate ...func(*models.Word)) models.Word {
	w := models.Word{
		Word:       text,
		Meaning:    "meaning of " + text,
		Sentence:   "a sentence with " + text,
		Status:     models.StatusNew,
		EaseFactor: 2.5,
		CreatedAt:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(&w)
	}
	return w
}
