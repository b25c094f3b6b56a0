package jobs

import (
	"sync"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

const maxTrackedJobs = 100

// Tracker keeps the state of recent import jobs in memory.
type Tracker struct {
	mu    sync.Mutex
	jobs  map[string]*models.ImportJob
	order []string
	now   func() time.Time
}

func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{jobs: make(map[string]*models.ImportJob), now: now}
}

func (t *Tracker) add(job models.ImportJob) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job.State = models.ImportQueued
	job.CreatedAt = t.now()
	t.jobs[job.ID] = &job
	t.order = append(t.order, job.ID)

	for len(t.order) > maxTrackedJobs {
		delete(t.jobs, t.order[0])
		t.order = t.order[1:]
	}
}

func (t *Tracker) update(id string, fn func(*models.ImportJob)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if job, ok := t.jobs[id]; ok {
		fn(job)
	}
}

func (t *Tracker) finish(id string, inserted int, err error) {
	now := t.now()
	t.update(id, func(j *models.ImportJob) {
		j.FinishedAt = &now
		if err != nil {
			j.State = models.ImportFailed
			j.Error = err.Error()
			return
		}
		j.State = models.ImportDone
		j.Inserted = inserted
		j.Skipped += j.Total - inserted
	})
}

func (t *Tracker) drop(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Get returns a copy of the job with the given id.
func (t *Tracker) Get(id string) (models.ImportJob, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	job, ok := t.jobs[id]
	if !ok {
		return models.ImportJob{}, false
	}
	return *job, true
}
