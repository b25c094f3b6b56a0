package jobs

import (
	"context"

	"github.com/google/uuid"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/vocab"
	"github.com/vytor/wordflash/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.WordImporter
	tracker    *Tracker
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, importer worker.WordImporter, tracker *Tracker) JobQueue {
	if tracker == nil {
		tracker = NewTracker(nil)
	}
	return &WorkerQueue{
		importPool: importPool,
		importer:   importer,
		tracker:    tracker,
	}
}

func (q *WorkerQueue) EnqueueImport(source string, parsed *vocab.Result) (models.ImportJob, error) {
	id := uuid.NewString()
	q.tracker.add(models.ImportJob{
		ID:        id,
		Source:    source,
		Total:     len(parsed.Entries),
		Skipped:   parsed.Skipped,
		RowErrors: parsed.Errors,
	})

	err := q.importPool.Submit(&trackedJob{
		ImportWordsJob: &worker.ImportWordsJob{
			ID:       id,
			Source:   source,
			Entries:  parsed.Entries,
			Importer: q.importer,
		},
		tracker: q.tracker,
	})
	if err != nil {
		q.tracker.drop(id)
		return models.ImportJob{}, err
	}

	job, _ := q.tracker.Get(id)
	return job, nil
}

func (q *WorkerQueue) ImportStatus(id string) (models.ImportJob, bool) {
	return q.tracker.Get(id)
}

func (q *WorkerQueue) Pending() int {
	return q.importPool.QueueSize()
}

// trackedJob mirrors the import's progress into the tracker.
type trackedJob struct {
	*worker.ImportWordsJob
	tracker *Tracker
}

func (j *trackedJob) Run(ctx context.Context) error {
	j.tracker.update(j.ID, func(job *models.ImportJob) { job.State = models.ImportRunning })
	err := j.ImportWordsJob.Run(ctx)
	j.tracker.finish(j.ID, j.Inserted, err)
	return err
}
