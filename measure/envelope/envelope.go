package envelope

import (
	"errors"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-gate/dsp/buffer"
	"github.com/cwbudde/algo-gate/dsp/core"
	"github.com/cwbudde/algo-gate/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by envelope functions.
var (
	ErrEmptyInput     = errors.New("envelope: input must not be empty")
	ErrLengthMismatch = errors.New("envelope: dry and wet must have equal length")
)

const (
	defaultSampleRate = 44100.0

	// silenceThreshold marks dry frames too quiet to carry gain information.
	silenceThreshold = 1e-12

	// residualThreshold rejects spectral residue left by mean removal on an
	// unmodulated gain track. Scaled by the track length before use.
	residualThreshold = 1e-9
)

// Config holds envelope measurement parameters.
type Config struct {
	SampleRate float64     // frame rate of the gain track, defaults to 44100
	FFTSize    int         // rounded up to a power of two, defaults to cover the gain track
	WindowType window.Type // analysis window, defaults to Hann
}

// Result holds gating envelope measurements.
//
//nolint:revive
type Result struct {
	FloorGain    float64
	PeakGain     float64
	Depth        float64
	Depth_dB     float64
	RateHz       float64
	PeriodFrames int
}

// Analyzer measures gating envelopes from dry/wet signal pairs.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates a new envelope analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: normalizeConfig(cfg)}
}

// Measure is a one-shot measurement for interleaved stereo slices.
func Measure(dry, wet []float64, cfg Config) (Result, error) {
	return NewAnalyzer(cfg).Measure(dry, wet)
}

// MeasureBuffers is a one-shot measurement for stereo buffers.
func MeasureBuffers(dry, wet *buffer.Buffer, cfg Config) (Result, error) {
	return NewAnalyzer(cfg).MeasureBuffers(dry, wet)
}

// FrameGains computes the per-frame gain of wet relative to dry for
// interleaved stereo signals of equal length. A frame whose dry magnitude
// falls below the silence threshold holds the previous gain; the hold
// starts at unity. An odd trailing sample carries no frame and is ignored.
// dst is grown as needed and returned.
func FrameGains(dst, dry, wet []float64) ([]float64, error) {
	if len(dry) == 0 {
		return nil, ErrEmptyInput
	}

	if len(dry) != len(wet) {
		return nil, ErrLengthMismatch
	}

	frames := len(dry) / 2
	dst = core.EnsureLen(dst, frames)

	gain := 1.0
	for i := 0; i < frames; i++ {
		d := math.Abs(dry[2*i]) + math.Abs(dry[2*i+1])
		w := math.Abs(wet[2*i]) + math.Abs(wet[2*i+1])

		if d > silenceThreshold {
			gain = w / d
		}

		dst[i] = gain
	}

	return dst, nil
}

// Measure computes envelope metrics for interleaved stereo slices.
func (a *Analyzer) Measure(dry, wet []float64) (Result, error) {
	gains, err := FrameGains(nil, dry, wet)
	if err != nil {
		return Result{}, err
	}

	return a.FromGains(gains), nil
}

// MeasureBuffers computes envelope metrics for stereo buffers.
func (a *Analyzer) MeasureBuffers(dry, wet *buffer.Buffer) (Result, error) {
	if dry == nil || wet == nil {
		return Result{}, ErrEmptyInput
	}

	return a.Measure(dry.Samples(), wet.Samples())
}

// FromGains computes envelope metrics from a per-frame gain track.
func (a *Analyzer) FromGains(gains []float64) Result {
	if len(gains) == 0 {
		return Result{}
	}

	floor := gains[0]
	peak := gains[0]

	for _, g := range gains[1:] {
		if g < floor {
			floor = g
		}

		if g > peak {
			peak = g
		}
	}

	res := Result{
		FloorGain: floor,
		PeakGain:  peak,
		Depth:     peak - floor,
		Depth_dB:  depthDB(peak, floor),
	}

	rateHz := a.modulationRate(gains)
	if rateHz > 0 {
		res.RateHz = rateHz
		res.PeriodFrames = int(math.Round(a.cfg.SampleRate / rateHz))
	}

	return res
}

// modulationRate locates the dominant modulation frequency of the gain
// track. The mean is removed so the DC bin cannot mask the modulation,
// the remainder is windowed and zero-padded to the FFT size, and the
// strongest non-DC bin wins. A track with no spectral content above the
// residual threshold reports zero.
func (a *Analyzer) modulationRate(gains []float64) float64 {
	fftSize := a.cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(gains))
	}

	if fftSize <= 1 {
		return 0
	}

	n := len(gains)
	if n > fftSize {
		n = fftSize
	}

	mean := 0.0
	for _, g := range gains[:n] {
		mean += g
	}
	mean /= float64(n)

	coeffs := window.Generate(a.cfg.WindowType, n, window.WithPeriodic())

	inData := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		inData[i] = complex((gains[i]-mean)*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, inData)
	if err != nil {
		return 0
	}

	bins := fftSize/2 + 1
	mags := magnitudes(out[:bins])

	peakBin := 0
	peakMag := 0.0

	for i := 1; i < bins; i++ {
		if mags[i] > peakMag {
			peakMag = mags[i]
			peakBin = i
		}
	}

	if peakBin < 1 || peakMag <= residualThreshold*float64(n) {
		return 0
	}

	return float64(peakBin) * a.cfg.SampleRate / float64(fftSize)
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func magnitudes(in []complex128) []float64 {
	out := make([]float64, len(in))

	buf := scratchPool.Get().(*scratchBuf)

	need := 2 * len(in)
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	re, im := buf.data[:len(in)], buf.data[len(in):need]
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

func depthDB(peak, floor float64) float64 {
	switch {
	case peak <= 0:
		return 0
	case floor <= 0:
		return math.Inf(1)
	default:
		return core.LinearToDB(peak / floor)
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}

	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}

	if cfg.FFTSize < 0 {
		cfg.FFTSize = 0
	}

	if cfg.FFTSize > 0 {
		cfg.FFTSize = nextPowerOf2(cfg.FFTSize)
	}

	return cfg
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
