package poller

import (
	"context"
	"sync"
	"time"
)

// Redirector fires its callback at most once, a fixed delay after Schedule
type Redirector struct {
	delay time.Duration
	once  sync.Once
}

func NewRedirector(delay time.Duration) *Redirector {
	return &Redirector{delay: delay}
}

// Schedule arms the redirect. Later calls are ignored. Cancelling ctx before
// the delay elapses drops the redirect.
func (r *Redirector) Schedule(ctx context.Context, fire func()) bool {
	scheduled := false
	r.once.Do(func() {
		scheduled = true
		go func() {
			t := time.NewTimer(r.delay)
			defer t.Stop()
			select {
			case <-ctx.Done():
			case <-t.C:
				fire()
			}
		}()
	})
	return scheduled
}
