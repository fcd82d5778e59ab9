// Package scheduler runs the watcher's periodic profile reload and input sweep.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler manages the watcher's cron jobs
type Scheduler struct {
	cron         *cron.Cron
	logger       *logrus.Entry
	mu           sync.RWMutex
	isRunning    bool
	jobIDs       []cron.EntryID
	sweepTimeout time.Duration
}

// NewScheduler creates a new scheduler. Jobs never overlap with themselves;
// a run still in progress when its next tick fires is skipped.
func NewScheduler(logger *logrus.Logger) *Scheduler {
	entry := logger.WithField("component", "scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger:       entry,
		jobIDs:       make([]cron.EntryID, 0),
		sweepTimeout: 10 * time.Minute,
	}
}

// ScheduleProfileReload schedules re-reading the profile file
func (s *Scheduler) ScheduleProfileReload(cronExpression string, reloader *ProfileReloader) error {
	return s.add(cronExpression, "profile_reload", func() {
		if _, err := reloader.Reload(); err != nil {
			s.logger.WithError(err).Warn("Scheduled profile reload failed")
		}
	})
}

// ScheduleSweep schedules evaluation of new documents in the input directory
func (s *Scheduler) ScheduleSweep(cronExpression string, sweeper *Sweeper) error {
	return s.add(cronExpression, "sweep", func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.sweepTimeout)
		defer cancel()

		processed, err := sweeper.Sweep(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled sweep failed")
			return
		}
		if processed > 0 {
			s.logger.WithField("documents", processed).Info("Scheduled sweep completed")
		}
	})
}

func (s *Scheduler) add(cronExpression, name string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, job)
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"job":      name,
		"schedule": cronExpression,
	}).Info("Scheduled job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
