package jobs

import (
	"time"

	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/logger"
	"evrental-staff-core/internal/repository"
)

// JobRunner coordinates the scheduled draft maintenance jobs
type JobRunner struct {
	drafts repository.DraftRepository
	config *config.Config
	now    func() time.Time
}

// NewJobRunner creates a job runner over the draft store
func NewJobRunner(drafts repository.DraftRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		drafts: drafts,
		config: cfg,
		now:    time.Now,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.PurgeStaleDrafts()
	jr.ReportOpenDrafts()
}
