package worker

import (
	"context"

	"github.com/vytor/wordflash/internal/vocab"
)

// WordImporter persists parsed vocabulary entries.
// This avoids import cycles by not importing the services package
type WordImporter interface {
	ImportEntries(ctx context.Context, jobID string, entries []vocab.Entry) (int, error)
}
