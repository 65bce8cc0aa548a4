// Wall-clock tick driver. The session itself has no scheduling: the runner
// measures elapsed real time each interval and hands it to Tick, which
// applies the pause gate and speed multiplier internally.
package sim

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTickInterval is the base frame interval for the driver loop.
const DefaultTickInterval = 50 * time.Millisecond

// Runner drives a session at a fixed real-time cadence.
type Runner struct {
	Session  *Session
	Interval time.Duration
}

// Run blocks, ticking the session until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("tick runner started", "interval", interval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("tick runner stopped", "elapsed", r.Session.SampleStats().SimTime)
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.Session.Tick(dt)
		}
	}
}
