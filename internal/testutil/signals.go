package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// StereoSine generates an interleaved stereo sine wave, frames pairs
// long, with the same signal on both channels.
func StereoSine(freqHz, sampleRate, amplitude float64, frames int) []float64 {
	out := make([]float64, 2*frames)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := 0; i < frames; i++ {
		v := amplitude * math.Sin(step*float64(i))
		out[2*i] = v
		out[2*i+1] = v
	}
	return out
}
