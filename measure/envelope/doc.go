// Package envelope provides amplitude envelope analysis for rhythmically
// gated stereo material.
//
// The analyzer compares a dry signal against its gated (wet) rendering and
// recovers the modulation that was applied between them:
//
//   - FloorGain, PeakGain: extremes of the per-frame gain track
//   - Depth: linear gain swing between floor and peak
//   - Depth_dB: peak-to-floor gain ratio in decibels
//   - RateHz: dominant modulation rate, taken from an FFT of the gain track
//   - PeriodFrames: modulation period rounded to whole frames
//
// # Usage
//
//	res, err := envelope.Measure(dry, wet, envelope.Config{SampleRate: 44100})
//	fmt.Printf("rate = %.1f Hz, depth = %.1f dB\n", res.RateHz, res.Depth_dB)
package envelope
