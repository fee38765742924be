package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emittedSample struct {
	contentID uint
	position  float64
	total     float64
	ended     bool
}

type sampleRecorder struct {
	samples []emittedSample
	err     error
}

func (r *sampleRecorder) emit(contentID uint, position, total float64, ended bool) error {
	r.samples = append(r.samples, emittedSample{contentID, position, total, ended})
	return r.err
}

// playFrom simulates continuous playback: one time update per second of
// wall clock, position advancing in lockstep.
func playFrom(s *Sampler, start time.Time, fromPos float64, seconds int) time.Time {
	now := start
	pos := fromPos
	for i := 0; i < seconds; i++ {
		now = now.Add(1 * time.Second)
		pos += 1
		s.OnTimeUpdate(now, pos)
	}
	return now
}

func TestSamplerEmitsOncePerInterval(t *testing.T) {
	rec := &sampleRecorder{}
	s := NewSampler(7, 0, rec.emit)

	s.OnPlay(base)
	playFrom(s, base, 0, 12)

	// 12s of playback -> samples at positions 5 and 10
	require.Len(t, rec.samples, 2)
	assert.Equal(t, uint(7), rec.samples[0].contentID)
	assert.InDelta(t, 5.0, rec.samples[0].position, 1e-9)
	assert.InDelta(t, 10.0, rec.samples[1].position, 1e-9)
	assert.False(t, rec.samples[0].ended)

	assert.InDelta(t, 5.0, rec.samples[0].total, 1e-9)
	assert.InDelta(t, 10.0, rec.samples[1].total, 1e-9)
}

func TestSamplerSilentWhilePausedOrSeeking(t *testing.T) {
	rec := &sampleRecorder{}
	s := NewSampler(1, 0, rec.emit)

	s.OnPlay(base)
	now := playFrom(s, base, 0, 3)

	s.OnPause(now)
	for i := 1; i <= 20; i++ {
		s.OnTimeUpdate(now.Add(time.Duration(i)*time.Second), 3)
	}
	require.Empty(t, rec.samples)

	now = now.Add(20 * time.Second)
	s.OnPlay(now)
	s.OnSeekStart(now)
	s.OnTimeUpdate(now.Add(1*time.Second), 60)
	require.Empty(t, rec.samples)

	// seek lands at 60; debounce restarts from there
	s.OnSeekEnd(now.Add(2*time.Second), 60)
	playFrom(s, now.Add(2*time.Second), 60, 4)
	assert.Empty(t, rec.samples)

	playFrom(s, now.Add(6*time.Second), 64, 1)
	require.Len(t, rec.samples, 1)
	assert.InDelta(t, 65.0, rec.samples[0].position, 1e-9)
}

func TestSamplerDiscardsOutOfOrderPositions(t *testing.T) {
	rec := &sampleRecorder{}
	s := NewSampler(1, 0, rec.emit)

	s.OnPlay(base)
	now := playFrom(s, base, 0, 4)

	// a stale update from an earlier position must not count
	s.OnTimeUpdate(now.Add(500*time.Millisecond), 2)
	watched := s.WatchTimeSeconds()

	s.OnTimeUpdate(now.Add(1500*time.Millisecond), 5)
	require.Len(t, rec.samples, 1)
	assert.InDelta(t, 5.0, rec.samples[0].position, 1e-9)
	assert.Greater(t, s.WatchTimeSeconds(), watched)
}

func TestSamplerTerminalSampleEmittedOnce(t *testing.T) {
	rec := &sampleRecorder{}
	s := NewSampler(3, 0, rec.emit)

	s.OnPlay(base)
	now := playFrom(s, base, 0, 7)

	s.OnEnded(now.Add(1*time.Second), 8)
	require.Len(t, rec.samples, 2)
	last := rec.samples[1]
	assert.True(t, last.ended)
	assert.InDelta(t, 8.0, last.position, 1e-9)

	// replaying the end event must not double-count anything
	total := s.WatchTimeSeconds()
	s.OnEnded(now.Add(2*time.Second), 8)
	s.OnTimeUpdate(now.Add(3*time.Second), 9)
	assert.Len(t, rec.samples, 2)
	assert.InDelta(t, total, s.WatchTimeSeconds(), 1e-9)
}

func TestSamplerDropsFailedEmits(t *testing.T) {
	rec := &sampleRecorder{err: errors.New("store unavailable")}
	s := NewSampler(9, 0, rec.emit)

	s.OnPlay(base)
	playFrom(s, base, 0, 11)

	// emit failures never interrupt the session; watch time keeps growing
	assert.Len(t, rec.samples, 2)
	assert.InDelta(t, 11.0, s.WatchTimeSeconds(), 1e-9)
}
