package buffer

import "testing"

func TestNewFrames(t *testing.T) {
	b := New(4)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	if b.Frames() != 4 {
		t.Fatalf("Frames() = %d, want 4", b.Frames())
	}

	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeFrames(t *testing.T) {
	b := New(-1)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

func TestFromSliceShared(t *testing.T) {
	s := []float64{1, 2, 3, 4, 5}
	b := FromSlice(s)

	if b.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2 for odd-length slice", b.Frames())
	}

	b.Samples()[0] = 9
	if s[0] != 9 {
		t.Fatal("FromSlice does not share backing array")
	}
}

func TestResizeZeroesNewFrames(t *testing.T) {
	b := New(2)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Resize(1)
	b.Resize(3)

	s := b.Samples()
	if s[0] != 1 || s[1] != 2 {
		t.Fatalf("kept frame changed: %v", s[:2])
	}
	for i := 2; i < 6; i++ {
		if s[i] != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0 after regrow", i, s[i])
		}
	}
}

func TestCopyIndependent(t *testing.T) {
	b := New(1)
	b.Samples()[0] = 7

	c := b.Copy()
	c.Samples()[0] = 8

	if b.Samples()[0] != 7 {
		t.Fatal("Copy shares backing array")
	}
}

func TestInterleave(t *testing.T) {
	dst := make([]float64, 6)
	n := Interleave(dst, []float64{1, 2, 3}, []float64{4, 5, 6})

	if n != 3 {
		t.Fatalf("frames = %d, want 3", n)
	}

	want := []float64{1, 4, 2, 5, 3, 6}
	for i := range dst {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestInterleaveShortInput(t *testing.T) {
	dst := make([]float64, 8)
	n := Interleave(dst, []float64{1}, []float64{2, 3})

	if n != 1 {
		t.Fatalf("frames = %d, want 1", n)
	}
	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("first frame = %v, %v, want 1, 2", dst[0], dst[1])
	}
}

func TestDeinterleave(t *testing.T) {
	left := make([]float64, 2)
	right := make([]float64, 2)

	n := Deinterleave(left, right, []float64{1, 4, 2, 5})
	if n != 2 {
		t.Fatalf("frames = %d, want 2", n)
	}

	if left[0] != 1 || left[1] != 2 {
		t.Fatalf("left = %v, want [1 2]", left)
	}
	if right[0] != 4 || right[1] != 5 {
		t.Fatalf("right = %v, want [4 5]", right)
	}
}

func TestInterleaveDeinterleaveRoundTrip(t *testing.T) {
	left := []float64{0.1, 0.2, 0.3}
	right := []float64{-0.1, -0.2, -0.3}

	dst := make([]float64, 6)
	Interleave(dst, left, right)

	gotL := make([]float64, 3)
	gotR := make([]float64, 3)
	Deinterleave(gotL, gotR, dst)

	for i := range left {
		if gotL[i] != left[i] || gotR[i] != right[i] {
			t.Fatalf("frame %d: got %v/%v, want %v/%v", i, gotL[i], gotR[i], left[i], right[i])
		}
	}
}
