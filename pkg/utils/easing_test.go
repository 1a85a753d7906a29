package utils

import (
	"math"
	"testing"
)

func TestEasing_Endpoints(t *testing.T) {
	funcs := map[string]func(float64) float64{
		"EaseOutQuad":  EaseOutQuad,
		"EaseOutCubic": EaseOutCubic,
	}

	for name, fn := range funcs {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); got != 0 {
				t.Errorf("%s(0) = %v, want 0", name, got)
			}
			if got := fn(1); got != 1 {
				t.Errorf("%s(1) = %v, want 1", name, got)
			}
			if got := fn(-0.5); got != 0 {
				t.Errorf("%s(-0.5) = %v, want 0 (clamped)", name, got)
			}
			if got := fn(2); got != 1 {
				t.Errorf("%s(2) = %v, want 1 (clamped)", name, got)
			}

			// 单调递增
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := fn(float64(i) / 100)
				if v < prev {
					t.Fatalf("%s not monotonic at t=%v", name, float64(i)/100)
				}
				prev = v
			}
		})
	}
}

func TestEasing_Midpoint(t *testing.T) {
	if got := EaseOutQuad(0.5); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("EaseOutQuad(0.5) = %v, want 0.75", got)
	}
	if got := EaseOutCubic(0.5); math.Abs(got-0.875) > 1e-9 {
		t.Errorf("EaseOutCubic(0.5) = %v, want 0.875", got)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{10, -10, 0.25, 5},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}
