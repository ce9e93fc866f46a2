package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestRangeValidateRejectsDegenerateBounds(t *testing.T) {
	bad := []Range{
		{Min: 0, Max: 0},
		{Min: 10, Max: -10},
		{Min: math.NaN(), Max: 0},
		{Min: -100, Max: math.Inf(1)},
	}
	for _, r := range bad {
		if err := r.Validate(); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange for %+v, got %v", r, err)
		}
	}
	if err := DefaultRange.Validate(); err != nil {
		t.Fatalf("expected default range to be valid, got %v", err)
	}
}

func TestMapIsAffineAndUnclamped(t *testing.T) {
	r := Range{Min: -100, Max: 0}
	if got := r.Map(-50, -1, 1); got != 0 {
		t.Fatalf("expected midpoint to map to 0, got %v", got)
	}
	if got := r.Map(50, -1, 1); got != 2 {
		t.Fatalf("expected out-of-range value to map past 1, got %v", got)
	}
	if got := r.Normalize(-25); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestQuantizeFloorsThenSaturates(t *testing.T) {
	r := Range{Min: -100, Max: 0}
	cases := []struct {
		in   float64
		want uint8
	}{
		{-100, 0},
		{-50, 127},
		{-25, 191},
		{0, 255},
		{-0, 255},
		{20, 255},
		{-400, 0},
		{math.Inf(-1), 0},
		{math.Inf(1), 255},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		if got := r.Quantize(c.in); got != c.want {
			t.Fatalf("Quantize(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestQuantizeIdentityRangeIsIdempotent(t *testing.T) {
	identity := Range{Min: 0, Max: 255}
	for v := 0; v <= 255; v++ {
		once := identity.Quantize(float64(v))
		if once != uint8(v) {
			t.Fatalf("expected identity quantize of %d to be %d, got %d", v, v, once)
		}
		if twice := identity.Quantize(float64(once)); twice != once {
			t.Fatalf("expected re-quantize of %d to be stable, got %d", once, twice)
		}
	}
}

func TestNudgeUsesOnlyTheSign(t *testing.T) {
	r := Range{Min: -100, Max: 0}
	for _, delta := range []float64{1, 3, 120, 0.0001} {
		if got := r.Nudge(BoundMin, delta); got.Min != -99.5 || got.Max != 0 {
			t.Fatalf("delta %v: expected min -99.5, got %+v", delta, got)
		}
	}
	for _, delta := range []float64{-1, -53.2} {
		if got := r.Nudge(BoundMax, delta); got.Max != -0.5 || got.Min != -100 {
			t.Fatalf("delta %v: expected max -0.5, got %+v", delta, got)
		}
	}
	if got := r.Nudge(BoundMax, 0); got != r {
		t.Fatalf("expected zero delta to leave range unchanged, got %+v", got)
	}
}
