package worker

import (
	"context"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/vocab"
)

// ImportWordsJob stores a parsed vocabulary file in the background.
type ImportWordsJob struct {
	ID       string
	Source   string
	Entries  []vocab.Entry
	Importer WordImporter

	// Inserted is set once Run succeeds.
	Inserted int
}

func (j *ImportWordsJob) Name() string { return "import_words" }

func (j *ImportWordsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"job_id": j.ID,
		"source": j.Source,
	})
	log.Info("starting vocabulary import: %d entries", len(j.Entries))

	inserted, err := j.Importer.ImportEntries(logger.NewContext(ctx, log), j.ID, j.Entries)
	if err != nil {
		log.Error("vocabulary import failed: %v", err)
		return err
	}

	j.Inserted = inserted
	log.Info("vocabulary import finished: %d inserted, %d already known", inserted, len(j.Entries)-inserted)
	return nil
}
