package progress

import "time"

// SampleIntervalSeconds is how far the playback position must advance before
// the sampler emits the next progress sample.
const SampleIntervalSeconds = 5.0

// SampleFunc receives a progress sample for persistence. Errors are treated
// as transient: the sample is dropped and the next interval retries nothing -
// playback is never blocked on a failed write.
type SampleFunc func(contentID uint, positionSeconds, totalWatchTimeSeconds float64, ended bool) error

// Sampler observes a single playback session and emits debounced progress
// samples: at most one per SampleIntervalSeconds of position advance, plus
// one terminal sample when playback ends. Nothing is emitted while paused or
// mid-seek, and position updates older than the last accepted one are
// discarded.
type Sampler struct {
	contentID uint
	acc       *Accumulator
	emit      SampleFunc

	playing      bool
	seeking      bool
	ended        bool
	lastPosition float64
	lastEmitPos  float64
}

// NewSampler creates a sampler for one playback session of a content item,
// seeded with the learner's previously persisted watch time.
func NewSampler(contentID uint, priorWatchTimeSeconds float64, emit SampleFunc) *Sampler {
	return &Sampler{
		contentID: contentID,
		acc:       NewAccumulator(priorWatchTimeSeconds),
		emit:      emit,
	}
}

// OnPlay resumes sampling
func (s *Sampler) OnPlay(now time.Time) {
	if s.ended {
		return
	}
	s.playing = true
	if !s.seeking {
		s.acc.Resume(now)
	}
}

// OnPause suspends sampling immediately
func (s *Sampler) OnPause(now time.Time) {
	s.playing = false
	s.acc.Suspend()
}

// OnSeekStart suspends sampling for the duration of the seek
func (s *Sampler) OnSeekStart(now time.Time) {
	s.seeking = true
	s.acc.Suspend()
}

// OnSeekEnd moves the session to the new position and resumes sampling if
// playback is active. The debounce reference moves with the seek so a jump
// does not trigger an immediate emit.
func (s *Sampler) OnSeekEnd(now time.Time, positionSeconds float64) {
	s.seeking = false
	s.lastPosition = positionSeconds
	s.lastEmitPos = positionSeconds
	if s.playing && !s.ended {
		s.acc.Resume(now)
	}
}

// OnTimeUpdate processes one position update from the player
func (s *Sampler) OnTimeUpdate(now time.Time, positionSeconds float64) {
	if s.ended || !s.playing || s.seeking {
		return
	}
	if positionSeconds < s.lastPosition {
		// out-of-order update, discard
		return
	}
	s.acc.Tick(now)
	s.lastPosition = positionSeconds

	if positionSeconds-s.lastEmitPos >= SampleIntervalSeconds {
		s.lastEmitPos = positionSeconds
		s.send(positionSeconds, false)
	}
}

// OnEnded emits the terminal sample. Safe to call more than once; only the
// first call emits.
func (s *Sampler) OnEnded(now time.Time, positionSeconds float64) {
	if s.ended {
		return
	}
	if s.playing && !s.seeking {
		s.acc.Tick(now)
	}
	s.ended = true
	s.playing = false
	s.acc.Suspend()
	if positionSeconds > s.lastPosition {
		s.lastPosition = positionSeconds
	}
	s.send(s.lastPosition, true)
}

// WatchTimeSeconds returns the session's current effective watch time
func (s *Sampler) WatchTimeSeconds() float64 {
	return s.acc.TotalSeconds()
}

func (s *Sampler) send(positionSeconds float64, ended bool) {
	if s.emit == nil {
		return
	}
	// drop on failure, the next interval carries the newer state anyway
	_ = s.emit(s.contentID, positionSeconds, s.acc.TotalSeconds(), ended)
}
