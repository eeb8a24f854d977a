package utils

import (
	"math"
	"testing"
)

// TestEasingEndpoints 所有缓动曲线都从 0 开始、到 1 结束
func TestEasingEndpoints(t *testing.T) {
	curves := map[string]func(float64) float64{
		"EaseLinear":     EaseLinear,
		"EaseInQuad":     EaseInQuad,
		"EaseOutQuad":    EaseOutQuad,
		"EaseOutCubic":   EaseOutCubic,
		"EaseSmoothstep": EaseSmoothstep,
	}

	for name, f := range curves {
		t.Run(name, func(t *testing.T) {
			if got := f(0); math.Abs(got) > 1e-9 {
				t.Errorf("%s(0) = %v, 期望 0", name, got)
			}
			if got := f(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("%s(1) = %v, 期望 1", name, got)
			}
		})
	}
}

// TestEasingMidpoints 测试中点取值
func TestEasingMidpoints(t *testing.T) {
	tests := []struct {
		name     string
		f        func(float64) float64
		expected float64
	}{
		{"EaseLinear", EaseLinear, 0.5},
		{"EaseInQuad", EaseInQuad, 0.25},
		{"EaseOutQuad", EaseOutQuad, 0.75},
		{"EaseOutCubic", EaseOutCubic, 0.875},
		{"EaseSmoothstep", EaseSmoothstep, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f(0.5); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("%s(0.5) = %v, 期望 %v", tt.name, got, tt.expected)
			}
		})
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t  float64
		expected float64
	}{
		{0, 100, 0, 0},
		{0, 100, 1, 100},
		{-50, 0, 0.5, -25},
		{10, 20, 0.25, 12.5},
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, got, tt.expected)
		}
	}
}
