package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.wav")

	src := []float64{0.5, -0.5, 0.25, -0.25, 1, -1, 0, 0}

	w, err := createWAV(path, 44100, 4)
	if err != nil {
		t.Fatalf("createWAV() error = %v", err)
	}
	if err := w.WriteBlock(src, 4); err != nil {
		t.Fatalf("WriteBlock() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := openWAV(path, 16)
	if err != nil {
		t.Fatalf("openWAV() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	if r.rate != 44100 || r.channels != 2 || r.bitDepth != 16 {
		t.Fatalf("format = (%d, %d, %d), want (44100, 2, 16)", r.rate, r.channels, r.bitDepth)
	}

	dst := make([]float64, 16)

	frames, err := r.ReadBlock(dst)
	if err != nil {
		t.Fatalf("ReadBlock() error = %v", err)
	}
	if frames != 4 {
		t.Fatalf("frames = %d, want 4", frames)
	}

	// One quantization step of slack on either side.
	const tol = 2.0 / maxInt16
	for i, want := range src {
		if math.Abs(dst[i]-want) > tol {
			t.Fatalf("dst[%d] = %v, want about %v", i, dst[i], want)
		}
	}

	frames, err = r.ReadBlock(dst)
	if err != nil {
		t.Fatalf("ReadBlock() at EOF error = %v", err)
	}
	if frames != 0 {
		t.Fatalf("frames after EOF = %d, want 0", frames)
	}
}

func TestWriteBlockClampsOverdrive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clamp.wav")

	w, err := createWAV(path, 44100, 2)
	if err != nil {
		t.Fatalf("createWAV() error = %v", err)
	}
	if err := w.WriteBlock([]float64{2, -2, 0.5, 0.5}, 2); err != nil {
		t.Fatalf("WriteBlock() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := openWAV(path, 4)
	if err != nil {
		t.Fatalf("openWAV() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	dst := make([]float64, 8)
	if _, err := r.ReadBlock(dst); err != nil {
		t.Fatalf("ReadBlock() error = %v", err)
	}

	if math.Abs(dst[0]-1) > 1e-9 || math.Abs(dst[1]+1) > 1e-9 {
		t.Fatalf("overdriven samples not clamped to full scale: %v, %v", dst[0], dst[1])
	}
}

func TestWriteBlockTooManyFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")

	w, err := createWAV(path, 44100, 2)
	if err != nil {
		t.Fatalf("createWAV() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.WriteBlock([]float64{1, 1}, 4); err == nil {
		t.Fatal("expected error for frame count beyond source")
	}
}

func TestWAVReaderWidensMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	enc := wav.NewEncoder(f, 44100, 16, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		SourceBitDepth: 16,
		Data:           []int{8192, -8192, 16384},
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	r, err := openWAV(path, 8)
	if err != nil {
		t.Fatalf("openWAV() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	if r.channels != 1 {
		t.Fatalf("channels = %d, want 1", r.channels)
	}

	dst := make([]float64, 16)

	frames, err := r.ReadBlock(dst)
	if err != nil {
		t.Fatalf("ReadBlock() error = %v", err)
	}
	if frames != 3 {
		t.Fatalf("frames = %d, want 3", frames)
	}

	for i := 0; i < frames; i++ {
		if dst[2*i] != dst[2*i+1] {
			t.Fatalf("frame %d channels differ: %v != %v", i, dst[2*i], dst[2*i+1])
		}
	}

	if math.Abs(dst[0]-8192.0/maxInt16) > 1e-9 {
		t.Fatalf("dst[0] = %v, want about %v", dst[0], 8192.0/maxInt16)
	}
}

func TestOpenWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	if err := os.WriteFile(path, []byte("not a wav"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := openWAV(path, 8); err == nil {
		t.Fatal("expected error for invalid file")
	}
}

func TestOpenWAVMissingFile(t *testing.T) {
	if _, err := openWAV(filepath.Join(t.TempDir(), "none.wav"), 8); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMaxSampleValue(t *testing.T) {
	tests := []struct {
		bitDepth int
		want     float64
	}{
		{16, maxInt16},
		{24, maxInt24},
		{32, maxInt32},
		{8, maxInt16},
	}

	for _, tt := range tests {
		if got := maxSampleValue(tt.bitDepth); got != tt.want {
			t.Fatalf("maxSampleValue(%d) = %v, want %v", tt.bitDepth, got, tt.want)
		}
	}
}
