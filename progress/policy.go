package progress

const (
	// WatchCompletionThreshold is the fraction of the video duration that
	// must be effectively watched before the video counts as complete.
	// Tolerates skipped credits without allowing gross skipping.
	WatchCompletionThreshold = 0.90

	// ResumeTailSeconds keeps a restored playback position away from the
	// very end of the video, so reloading near the end cannot immediately
	// retrigger end-of-playback behavior.
	ResumeTailSeconds = 5.0
)

// IsWatchComplete reports whether the accumulated watch time satisfies the
// completion threshold for the given duration. The stored completed flag is
// authoritative once set; callers must never use this to revert it, even if
// the duration metadata has changed since.
func IsWatchComplete(totalWatchTimeSeconds, durationSeconds float64) bool {
	if durationSeconds <= 0 {
		return false
	}
	return totalWatchTimeSeconds >= WatchCompletionThreshold*durationSeconds
}

// ResumePosition clamps a stored playback position for session restore.
// This is a UX safeguard, not a completion criterion.
func ResumePosition(lastPositionSeconds, durationSeconds float64) float64 {
	if lastPositionSeconds < 0 {
		return 0
	}
	if durationSeconds <= 0 {
		return lastPositionSeconds
	}
	max := durationSeconds - ResumeTailSeconds
	if max < 0 {
		max = 0
	}
	if lastPositionSeconds > max {
		return max
	}
	return lastPositionSeconds
}
