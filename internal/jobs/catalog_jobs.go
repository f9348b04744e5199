package jobs

import (
	"context"

	"helicharter-portal/internal/config"
	"helicharter-portal/internal/logger"
)

// RefreshCatalog reloads the helicopter list so marketing pages are served from cache
func (jr *JobRunner) RefreshCatalog() {
	jr.runWithRecovery("RefreshCatalog", func() {
		timeout := config.Seconds(jr.config.Backend.RequestTimeoutSeconds)
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := jr.catalog.Refresh(ctx); err != nil {
			logger.Error("Failed to refresh helicopter catalog", "error", err)
		}
	})
}

// SweepRateLimiter drops rate limiter state for clients that have gone quiet
func (jr *JobRunner) SweepRateLimiter() {
	if jr.limiter == nil {
		return
	}
	jr.runWithRecovery("SweepRateLimiter", func() {
		jr.limiter.Sweep(jr.now())
	})
}
