package core

import "time"

// FixedStep converts variable wall-clock frame times into whole fixed-size
// simulation steps. Leftover time is carried into the next frame.
type FixedStep struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
}

// NewFixedStep creates an accumulator producing tickRate steps per second.
// At most maxSteps steps are produced per frame; time beyond that is dropped
// so a long stall does not trigger a burst of catch-up ticks.
func NewFixedStep(tickRate, maxSteps int) *FixedStep {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &FixedStep{
		step:     time.Second / time.Duration(tickRate),
		maxSteps: maxSteps,
	}
}

// Step returns the fixed step duration.
func (f *FixedStep) Step() time.Duration {
	return f.step
}

// DT returns the fixed step in seconds.
func (f *FixedStep) DT() float64 {
	return f.step.Seconds()
}

// Advance adds elapsed wall-clock time and returns how many fixed steps to run.
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	f.acc += elapsed

	n := int(f.acc / f.step)
	if n > f.maxSteps {
		n = f.maxSteps
		f.acc = 0
		return n
	}
	f.acc -= time.Duration(n) * f.step
	return n
}

// Reset drops any accumulated time.
func (f *FixedStep) Reset() {
	f.acc = 0
}
