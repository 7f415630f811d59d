package jobs

import (
	"context"
	"time"

	"toolshare-admin/internal/config"
	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/repository"
	"toolshare-admin/internal/service"
)

// jobTimeout bounds a single job run.
const jobTimeout = 2 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reports service.ReportService
	admins  repository.AdminRepository
	email   service.EmailService
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(reports service.ReportService, admins repository.AdminRepository, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		reports: reports,
		admins:  admins,
		email:   email,
		config:  cfg,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	start := time.Now()
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.WarmDisputeCache()
	jr.SendOpenDisputeDigest()
}
