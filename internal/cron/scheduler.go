// Package cron runs periodic maintenance jobs.
package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
)

// Snapshotter records the daily statistics snapshot.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*models.StatsSnapshot, error)
}

// Scheduler takes a stats snapshot once a day.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	snapshotter Snapshotter
	at          string
	job         *gocron.Job
	log         *logger.Logger
}

// New creates a scheduler that fires at the HH:MM time at in loc.
func New(snapshotter Snapshotter, at string, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:   s,
		snapshotter: snapshotter,
		at:          at,
		log:         logger.Default().WithPrefix("cron"),
	}
}

// Start registers the jobs and runs the scheduler in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	job, err := s.scheduler.Every(1).Day().At(s.at).Do(s.RunSnapshot, ctx)
	if err != nil {
		return fmt.Errorf("cron: schedule snapshot at %s: %w", s.at, err)
	}
	s.job = job
	s.scheduler.StartAsync()
	s.log.Info("daily stats snapshot scheduled at %s (%s)", s.at, s.scheduler.Location())
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// NextRun reports when the snapshot fires next; zero before Start.
func (s *Scheduler) NextRun() time.Time {
	if s.job == nil {
		return time.Time{}
	}
	return s.job.NextRun()
}

// RunSnapshot takes one snapshot immediately.
func (s *Scheduler) RunSnapshot(ctx context.Context) {
	log := s.log.WithField("job", "stats_snapshot")
	start := time.Now()

	snap, err := s.snapshotter.Snapshot(logger.NewContext(ctx, log))
	if err != nil {
		log.Error("snapshot failed after %v: %v", time.Since(start), err)
		return
	}
	log.Info("snapshot for %s completed in %v", snap.Day, time.Since(start))
}
