package jobs

import (
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/vocab"
)

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueImport schedules the parsed entries for insertion.
	EnqueueImport(source string, parsed *vocab.Result) (models.ImportJob, error)
	ImportStatus(id string) (models.ImportJob, bool)
	Pending() int
}
