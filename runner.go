package physac

import (
	"context"
	"sync"
	"time"
)

// Runner steps a world on its own goroutine.
// Any access to the world while it runs must go through Do.
type Runner struct {
	world    *World
	interval time.Duration
	mu       sync.Mutex
}

// MinRunnerInterval is the shortest polling interval of a Runner
const MinRunnerInterval = time.Millisecond

// NewRunner creates a runner polling the world clock every interval.
// A non positive interval falls back to the world time step, and the
// interval is never shorter than MinRunnerInterval.
func NewRunner(world *World, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Duration(world.TimeStep() * float64(time.Second))
	}
	interval = max(interval, MinRunnerInterval)

	return &Runner{
		world:    world,
		interval: interval,
	}
}

// Run advances the world until ctx is cancelled, and returns ctx.Err()
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// The time spent before Run is not simulated
	r.Do(func(w *World) {
		w.resetClock()
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Do(func(w *World) {
				w.RunStep()
			})
		}
	}
}

// Do calls fn with exclusive access to the world
func (r *Runner) Do(fn func(world *World)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r.world)
}
