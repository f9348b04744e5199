package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"helicharter-portal/internal/jobs"
	"helicharter-portal/internal/logger"
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

	if _, err := s.cron.AddFunc(cfg.RefreshCatalog, s.jobs.RefreshCatalog); err != nil {
		logger.Error("Failed to register RefreshCatalog job", "spec", cfg.RefreshCatalog, "error", err)
	}

	if _, err := s.cron.AddFunc(cfg.SweepRateLimiter, s.jobs.SweepRateLimiter); err != nil {
		logger.Error("Failed to register SweepRateLimiter job", "spec", cfg.SweepRateLimiter, "error", err)
	}

	logger.Info("Cron jobs registered", "count", len(s.cron.Entries()))
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
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
