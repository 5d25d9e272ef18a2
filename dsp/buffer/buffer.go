package buffer

import "github.com/cwbudde/algo-gate/dsp/core"

// Buffer wraps an interleaved stereo float64 slice with reuse-friendly
// semantics. Samples alternate left/right; one frame is two samples.
// DSP functions accept raw []float64; use Samples() to bridge.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer holding the given number of stereo frames.
func New(frames int) *Buffer {
	if frames < 0 {
		frames = 0
	}
	return &Buffer{samples: make([]float64, 2*frames)}
}

// FromSlice wraps an existing interleaved slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying interleaved slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples (two per frame).
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Frames returns the number of complete stereo frames. A trailing sample
// without a partner does not count.
func (b *Buffer) Frames() int {
	return len(b.samples) / 2
}

// Resize sets the frame count, reusing existing capacity when possible.
// Frames beyond the previous length are zeroed.
func (b *Buffer) Resize(frames int) {
	if frames < 0 {
		frames = 0
	}
	n := 2 * frames

	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}
	// Zero any newly exposed samples that may have stale data from
	// previous use of the backing array.
	if n > oldLen {
		core.Zero(b.samples[oldLen:])
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	core.Zero(b.samples)
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s}
}

// Interleave writes left/right pairs into dst and returns the number of
// frames written, limited by the shortest argument.
func Interleave(dst, left, right []float64) int {
	frames := len(dst) / 2
	if len(left) < frames {
		frames = len(left)
	}
	if len(right) < frames {
		frames = len(right)
	}

	for i := 0; i < frames; i++ {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}
	return frames
}

// Deinterleave splits interleaved src into left and right and returns the
// number of frames copied, limited by the shortest argument.
func Deinterleave(left, right, src []float64) int {
	frames := len(src) / 2
	if len(left) < frames {
		frames = len(left)
	}
	if len(right) < frames {
		frames = len(right)
	}

	for i := 0; i < frames; i++ {
		left[i] = src[2*i]
		right[i] = src[2*i+1]
	}
	return frames
}
