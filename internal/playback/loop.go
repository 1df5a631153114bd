package playback

// RoundsInfinite requests endless looping.
const RoundsInfinite = -1

// ShouldContinue reports whether another round should start after
// completedRounds full rounds. A targetRounds of RoundsInfinite always
// continues; otherwise playback continues while fewer than targetRounds
// rounds have completed.
func ShouldContinue(targetRounds, completedRounds int) bool {
	if targetRounds == RoundsInfinite {
		return true
	}
	return completedRounds < targetRounds
}
