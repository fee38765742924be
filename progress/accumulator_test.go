package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestAccumulatorCreditsPlausibleDeltas(t *testing.T) {
	acc := NewAccumulator(0)
	acc.Resume(base)

	credited := acc.Tick(base.Add(1 * time.Second))
	assert.InDelta(t, 1.0, credited, 1e-9)
	assert.InDelta(t, 1.0, acc.TotalSeconds(), 1e-9)

	acc.Tick(base.Add(2 * time.Second))
	acc.Tick(base.Add(3 * time.Second))
	assert.InDelta(t, 3.0, acc.TotalSeconds(), 1e-9)
}

func TestAccumulatorDiscardsImplausibleDeltas(t *testing.T) {
	tests := []struct {
		name  string
		delta time.Duration
		want  float64
	}{
		{"backgrounded tab", 10 * time.Second, 0},
		{"at upper bound", 2 * time.Second, 0},
		{"below lower bound", 50 * time.Millisecond, 0},
		{"at lower bound", 100 * time.Millisecond, 0},
		{"plausible", 1 * time.Second, 1.0},
		{"plausible short", 250 * time.Millisecond, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccumulator(0)
			acc.Resume(base)
			credited := acc.Tick(base.Add(tt.delta))
			assert.InDelta(t, tt.want, credited, 1e-9)
			assert.InDelta(t, tt.want, acc.TotalSeconds(), 1e-9)
		})
	}
}

func TestAccumulatorSeededFromPriorTotal(t *testing.T) {
	acc := NewAccumulator(42.5)
	assert.InDelta(t, 42.5, acc.TotalSeconds(), 1e-9)

	acc.Resume(base)
	acc.Tick(base.Add(1 * time.Second))
	assert.InDelta(t, 43.5, acc.TotalSeconds(), 1e-9)

	assert.Zero(t, NewAccumulator(-3).TotalSeconds())
}

func TestAccumulatorSuspendResetsReference(t *testing.T) {
	acc := NewAccumulator(0)
	acc.Resume(base)
	acc.Tick(base.Add(1 * time.Second))

	// paused for 30s of wall clock
	acc.Suspend()
	require.Zero(t, acc.Tick(base.Add(10*time.Second)))

	// resume resets the reference, so the first tick after it measures
	// from the resume instant, not from before the pause
	acc.Resume(base.Add(31 * time.Second))
	credited := acc.Tick(base.Add(32 * time.Second))
	assert.InDelta(t, 1.0, credited, 1e-9)
	assert.InDelta(t, 2.0, acc.TotalSeconds(), 1e-9)
}

func TestAccumulatorTotalNeverDecreases(t *testing.T) {
	acc := NewAccumulator(5)
	acc.Resume(base)

	prev := acc.TotalSeconds()
	ticks := []time.Duration{
		500 * time.Millisecond,
		1 * time.Second,
		9 * time.Second, // discarded
		9500 * time.Millisecond,
		10 * time.Second,
	}
	for _, d := range ticks {
		acc.Tick(base.Add(d))
		require.GreaterOrEqual(t, acc.TotalSeconds(), prev)
		prev = acc.TotalSeconds()
	}
}
