package physac

import "time"

// Advance accumulates elapsed time and runs as many fixed steps as it covers.
// The remainder is carried to the next call. It returns the number of steps run.
func (w *World) Advance(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}

	w.accumulator += elapsed.Seconds()

	steps := 0
	for w.accumulator >= w.deltaTime {
		w.Step()
		w.accumulator -= w.deltaTime
		steps++
	}

	return steps
}

// RunStep reads the world clock, and advances the simulation by the time
// elapsed since the previous call (or since the world creation)
func (w *World) RunStep() int {
	now := w.clock()
	elapsed := now.Sub(w.previousTime)
	w.previousTime = now

	return w.Advance(elapsed)
}

// resetClock drops the time elapsed since the last RunStep
func (w *World) resetClock() {
	w.previousTime = w.clock()
	w.accumulator = 0
}
