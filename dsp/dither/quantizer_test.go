package dither

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestQuantizerDefaults(t *testing.T) {
	q, err := NewQuantizer()
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	if q.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", q.BitDepth())
	}
	if q.DitherType() != Triangular {
		t.Errorf("DitherType() = %v, want Triangular", q.DitherType())
	}
	if q.Amplitude() != 1 {
		t.Errorf("Amplitude() = %v, want 1", q.Amplitude())
	}
	if !q.Limit() {
		t.Error("Limit() = false, want true")
	}
}

func TestQuantizerTruncatesWithoutDither(t *testing.T) {
	q, err := NewQuantizer(WithType(None))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	tests := []struct {
		input float64
		want  int
	}{
		{0, 0},
		{0.5, 16383},
		{-0.5, -16384},
		{1, 32767},
		{-1, -32768},
		{2, 32767},
		{-2, -32768},
	}

	for _, tt := range tests {
		if got := q.ProcessInteger(tt.input); got != tt.want {
			t.Errorf("ProcessInteger(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestQuantizerBitDepthLimits(t *testing.T) {
	q, err := NewQuantizer(WithBitDepth(8), WithType(None))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	if got := q.ProcessInteger(2); got != 127 {
		t.Errorf("ProcessInteger(2) = %d, want 127", got)
	}
	if got := q.ProcessInteger(-2); got != -128 {
		t.Errorf("ProcessInteger(-2) = %d, want -128", got)
	}
}

func TestQuantizerTriangularErrorBound(t *testing.T) {
	q, err := NewQuantizer(WithRNG(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	src := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		in := src.Float64()*1.8 - 0.9
		got := q.ProcessInteger(in)

		// Triangular noise spans (-1, 1) steps and flooring adds at most
		// one more, so the integer stays within two steps of the ideal.
		if math.Abs(float64(got)-in*32767.5) >= 2 {
			t.Fatalf("ProcessInteger(%v) = %d, off by %v steps",
				in, got, math.Abs(float64(got)-in*32767.5))
		}
	}
}

func TestQuantizerProcessSampleBound(t *testing.T) {
	q, err := NewQuantizer(WithType(None))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	step := 1.0 / 32767.5
	for _, in := range []float64{0, 0.25, -0.25, 0.999, -0.999, 1, -1} {
		got := q.ProcessSample(in)
		if math.Abs(got-in) > 0.5*step+1e-12 {
			t.Errorf("ProcessSample(%v) = %v, off by more than half a step", in, got)
		}
	}
}

func TestQuantizerProcessInPlace(t *testing.T) {
	q, err := NewQuantizer(WithType(None))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	buf := []float64{0.5, -0.5, 0.125}
	want := make([]float64, len(buf))
	for i, v := range buf {
		want[i] = q.ProcessSample(v)
	}

	q.ProcessInPlace(buf)
	for i := range buf {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestQuantizerDeterministicWithRNG(t *testing.T) {
	newSeeded := func() *Quantizer {
		q, err := NewQuantizer(WithRNG(rand.New(rand.NewPCG(7, 11))))
		if err != nil {
			t.Fatalf("NewQuantizer() error = %v", err)
		}
		return q
	}

	a, b := newSeeded(), newSeeded()
	for _, in := range []float64{0.1, -0.3, 0.7, 0.7, -0.9} {
		if got, want := a.ProcessInteger(in), b.ProcessInteger(in); got != want {
			t.Fatalf("seeded quantizers diverged: %d vs %d", got, want)
		}
	}
}

func TestQuantizerInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"bit depth too low", WithBitDepth(0)},
		{"bit depth too high", WithBitDepth(33)},
		{"invalid type", WithType(Type(99))},
		{"negative amplitude", WithAmplitude(-1)},
		{"nan amplitude", WithAmplitude(math.NaN())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opt); err == nil {
				t.Fatal("expected option error")
			}
		})
	}
}

func TestQuantizerUnlimited(t *testing.T) {
	q, err := NewQuantizer(WithType(None), WithLimit(false))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	if got := q.ProcessInteger(2); got != 65535 {
		t.Errorf("ProcessInteger(2) = %d, want 65535", got)
	}
}
