package audio

import "testing"

func TestTapZeroPadsShortHistory(t *testing.T) {
	tap := NewTap(8)
	tap.Write([]float64{1, 2, 3})

	dst := make([]float64, 5)
	for i := range dst {
		dst[i] = -1
	}
	if n := tap.Latest(dst); n != 3 {
		t.Fatalf("expected 3 real samples, got %d", n)
	}
	want := []float64{0, 0, 1, 2, 3}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dst)
		}
	}
}

func TestTapOverwritesOldest(t *testing.T) {
	tap := NewTap(4)
	tap.Write([]float64{1, 2, 3})
	tap.Write([]float64{4, 5, 6})

	dst := make([]float64, 4)
	tap.Latest(dst)
	want := []float64{3, 4, 5, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dst)
		}
	}
	if tap.Len() != 4 {
		t.Fatalf("expected fill 4, got %d", tap.Len())
	}
}

func TestTapOversizedWriteKeepsTail(t *testing.T) {
	tap := NewTap(3)
	tap.Write([]float64{1, 2, 3, 4, 5})

	dst := make([]float64, 3)
	tap.Latest(dst)
	if dst[0] != 3 || dst[2] != 5 {
		t.Fatalf("expected [3 4 5], got %v", dst)
	}
}

func TestTapClear(t *testing.T) {
	tap := NewTap(4)
	tap.Write([]float64{1, 2})
	tap.Clear()

	dst := []float64{9, 9}
	if n := tap.Latest(dst); n != 0 {
		t.Fatalf("expected no samples after clear, got %d", n)
	}
	if dst[0] != 0 || dst[1] != 0 {
		t.Fatalf("expected zero padding after clear, got %v", dst)
	}
}
