package jobs

import (
	"context"
	"time"

	"helicharter-portal/internal/config"
	"helicharter-portal/internal/logger"
)

// CatalogRefresher reloads the helicopter catalog cache
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// VisitorSweeper forgets idle rate limiter entries
type VisitorSweeper interface {
	Sweep(now time.Time)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	catalog CatalogRefresher
	limiter VisitorSweeper
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner. limiter may be nil when no HTTP server
// runs in the process.
func NewJobRunner(catalog CatalogRefresher, limiter VisitorSweeper, cfg *config.Config) *JobRunner {
	return &JobRunner{
		catalog: catalog,
		limiter: limiter,
		config:  cfg,
		now:     time.Now,
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
	jr.RefreshCatalog()
	jr.SweepRateLimiter()
}
