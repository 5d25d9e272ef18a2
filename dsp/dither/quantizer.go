package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer performs bit-depth quantization with optional dither noise.
type Quantizer struct {
	bitDepth   int
	ditherType Type
	amplitude  float64
	limit      bool
	rng        *rand.Rand

	// derived from bitDepth
	bitMul  float64
	bitDiv  float64
	limitLo int
	limitHi int
}

// NewQuantizer creates a new Quantizer. The default configuration is
// 16-bit, triangular dither, amplitude 1.0, limiting enabled.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:   cfg.bitDepth,
		ditherType: cfg.ditherType,
		amplitude:  cfg.amplitude,
		limit:      cfg.limit,
		rng:        cfg.rng,
	}

	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q.bitMul = math.Exp2(float64(q.bitDepth-1)) - 0.5
	q.bitDiv = 1.0 / q.bitMul
	q.limitLo = -int(math.Round(q.bitMul + 0.5))
	q.limitHi = int(math.Round(q.bitMul - 0.5))

	return q, nil
}

// ProcessInteger quantizes the input (expected in [-1, +1]) to an integer
// in the bit-depth range.
func (q *Quantizer) ProcessInteger(input float64) int {
	result := q.quantize(q.bitMul * input)

	if q.limit {
		result = max(q.limitLo, min(q.limitHi, result))
	}

	return result
}

// ProcessSample quantizes the input and returns a normalized float64
// in approximately [-1, +1].
func (q *Quantizer) ProcessSample(input float64) float64 {
	return (float64(q.ProcessInteger(input)) + 0.5) * q.bitDiv
}

// ProcessInPlace quantizes each sample in buf in-place.
func (q *Quantizer) ProcessInPlace(buf []float64) {
	for idx, val := range buf {
		buf[idx] = q.ProcessSample(val)
	}
}

// quantize adds dither noise per the configured type and floors to integer.
func (q *Quantizer) quantize(input float64) int {
	switch q.ditherType {
	case Rectangular:
		input += q.amplitude * (q.rng.Float64()*2 - 1)
	case Triangular:
		input += q.amplitude * (q.rng.Float64() - q.rng.Float64())
	case Gaussian:
		input += q.amplitude * q.rng.NormFloat64()
	}

	return int(math.Floor(input))
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() Type { return q.ditherType }

// Amplitude returns the dither noise amplitude.
func (q *Quantizer) Amplitude() float64 { return q.amplitude }

// Limit reports whether output limiting is enabled.
func (q *Quantizer) Limit() bool { return q.limit }
