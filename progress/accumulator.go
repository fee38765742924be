package progress

import "time"

// Plausibility window for a single tick delta, in seconds. Deltas outside
// the window (backgrounded tabs, seeks, clock jumps) contribute nothing to
// the accumulated watch time.
const (
	MinPlausibleDeltaSeconds = 0.1
	MaxPlausibleDeltaSeconds = 2.0
)

// Accumulator converts wall-clock ticks from an active playback session into
// effective watch time. It is seeded with any previously persisted total so
// a resumed session continues counting from where the learner left off.
// The total never decreases.
type Accumulator struct {
	total    float64
	lastTick time.Time
	running  bool
}

// NewAccumulator creates an accumulator seeded with the prior watch time
func NewAccumulator(priorWatchTimeSeconds float64) *Accumulator {
	if priorWatchTimeSeconds < 0 {
		priorWatchTimeSeconds = 0
	}
	return &Accumulator{total: priorWatchTimeSeconds}
}

// Resume marks playback as active and resets the tick reference point, so
// the first tick after a pause or seek contributes no spurious delta.
func (a *Accumulator) Resume(now time.Time) {
	a.running = true
	a.lastTick = now
}

// Suspend stops counting. Called on pause and on seek start.
func (a *Accumulator) Suspend() {
	a.running = false
}

// Tick credits the wall-clock delta since the previous tick, if playback is
// active and the delta falls inside the plausibility window. Returns the
// credited amount in seconds (0 when the delta was discarded).
func (a *Accumulator) Tick(now time.Time) float64 {
	if !a.running {
		return 0
	}
	delta := now.Sub(a.lastTick).Seconds()
	a.lastTick = now
	if delta <= MinPlausibleDeltaSeconds || delta >= MaxPlausibleDeltaSeconds {
		return 0
	}
	a.total += delta
	return delta
}

// TotalSeconds returns the accumulated effective watch time
func (a *Accumulator) TotalSeconds() float64 {
	return a.total
}
