package gate

const beatsPerWholeNote = 4.0

// NoteDuration returns the length in seconds of one 1/division note at
// the given tempo, assuming a quarter-note beat. An eighth note at
// 128 BPM is NoteDuration(128, 8). Non-positive inputs yield 0.
func NoteDuration(bpm float64, division int) float64 {
	if bpm <= 0 || division <= 0 {
		return 0
	}
	return 60.0 / bpm * beatsPerWholeNote / float64(division)
}

// TempoParameters derives a cycle spanning one 1/division note at the
// given tempo.
func TempoParameters(bpm float64, division int, mixFactor float64) Parameters {
	return NewParameters(NoteDuration(bpm, division), mixFactor)
}
