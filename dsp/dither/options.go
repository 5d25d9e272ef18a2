package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultBitDepth  = 16
	defaultType      = Triangular
	defaultAmplitude = 1.0
	defaultLimit     = true
	minBitDepth      = 1
	maxBitDepth      = 32
)

type config struct {
	bitDepth   int
	ditherType Type
	amplitude  float64
	limit      bool
	rng        *rand.Rand
}

func defaultConfig() config {
	return config{
		bitDepth:   defaultBitDepth,
		ditherType: defaultType,
		amplitude:  defaultAmplitude,
		limit:      defaultLimit,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth for quantization (1-32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}

		cfg.bitDepth = bits

		return nil
	}
}

// WithType sets the dither noise PDF (default [Triangular]).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", t)
		}

		cfg.ditherType = t

		return nil
	}
}

// WithAmplitude sets the dither noise amplitude in quantization steps
// (default 1.0, must be >= 0).
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", amp)
		}

		cfg.amplitude = amp

		return nil
	}
}

// WithLimit enables or disables output limiting to the bit-depth range
// (default true).
func WithLimit(enabled bool) Option {
	return func(cfg *config) error {
		cfg.limit = enabled
		return nil
	}
}

// WithRNG sets a deterministic random number generator for reproducible
// output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}
