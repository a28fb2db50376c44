package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is how often the runner pushes in the background.
const DefaultInterval = 60 * time.Second

// Runner pushes progress on a fixed interval. All background syncs are
// silent; failures are logged and the next tick tries again.
type Runner struct {
	syncer   *Syncer
	userID   string
	interval time.Duration
	log      *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a runner for the given user. A non-positive interval
// falls back to DefaultInterval.
func NewRunner(s *Syncer, userID string, interval time.Duration, log *slog.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{syncer: s, userID: userID, interval: interval, log: log}
}

// Start syncs once immediately, then on every tick until Stop or ctx
// cancellation. An in-flight sync is never interrupted mid-push; the
// loop only checks for cancellation between syncs.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		r.syncOnce(ctx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.syncOnce(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) syncOnce(ctx context.Context) {
	// Silent mode: failures are logged by the syncer and the next tick
	// tries again.
	_ = r.syncer.Sync(context.WithoutCancel(ctx), r.userID, true)
}
