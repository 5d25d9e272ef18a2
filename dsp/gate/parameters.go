package gate

import (
	"math"

	"github.com/cwbudde/algo-gate/dsp/core"
)

const (
	// SampleRate is the fixed rate in Hz that the duration-to-sample
	// derivation assumes. Feeding audio recorded at another rate shifts
	// the musical timing of the cycle but not its shape.
	SampleRate = 44100.0

	fadeOutRatio = 0.05
	fadeInRatio  = 0.95

	// floorLevel keeps the closed half at 10% instead of full silence.
	floorLevel = 0.1

	maxGateLength = math.MaxInt32
)

// Parameters describes one precomputed gate cycle in samples per channel.
// The cycle opens at offset zero, holds for FadeOut frames, fades toward
// the floor over FadeIn frames, and mirrors that motion after
// GateMidpoint. Fields are exported so hosts can build hand-tuned cycles
// directly; NewParameters is the tempo-friendly path.
type Parameters struct {
	GateLength   int
	GateMidpoint int
	FadeOut      int
	FadeIn       int
	MixFactor    float64
}

// NewParameters derives a cycle from its duration in seconds at the fixed
// SampleRate. The fade regions split each half into a 5% hold and a 95%
// ramp; rounding may make their sum differ from GateMidpoint by a sample.
// mixFactor is clamped to [0, 1]. Durations that are not positive and
// finite yield a zero-length cycle.
func NewParameters(gateDuration, mixFactor float64) Parameters {
	p := Parameters{MixFactor: core.Clamp(mixFactor, 0, 1)}

	if math.IsNaN(gateDuration) || math.IsInf(gateDuration, 0) || gateDuration <= 0 {
		return p
	}

	samples := math.Round(gateDuration * SampleRate)
	if samples > maxGateLength {
		samples = maxGateLength
	}

	p.GateLength = int(samples)
	p.GateMidpoint = int(math.Round(float64(p.GateLength) / 2))
	p.FadeOut = int(math.Round(float64(p.GateMidpoint) * fadeOutRatio))
	p.FadeIn = int(math.Round(float64(p.GateMidpoint) * fadeInRatio))

	return p
}
