package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"toolshare-admin/internal/jobs"
	"toolshare-admin/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	registered := 0
	for _, j := range []struct {
		name string
		spec string
		run  func()
	}{
		{"WarmDisputeCache", cfg.WarmDisputeCache, s.jobs.WarmDisputeCache},
		{"SendOpenDisputeDigest", cfg.SendOpenDisputeDigest, s.jobs.SendOpenDisputeDigest},
	} {
		if j.spec == "" {
			logger.Info("Job disabled", "job", j.name)
			continue
		}
		if _, err := s.cron.AddFunc(j.spec, j.run); err != nil {
			logger.Error("Failed to register job", "job", j.name, "spec", j.spec, "error", err)
			continue
		}
		registered++
	}

	logger.Info("Cron jobs registered", "count", registered)
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any job is registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
