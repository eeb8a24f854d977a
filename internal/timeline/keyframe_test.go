package timeline

import (
	"math"
	"math/rand"
	"testing"
)

// TestEvaluate_Linear tests linear interpolation
func TestEvaluate_Linear(t *testing.T) {
	keyframes := []Keyframe{
		{Time: 0, Value: 0},
		{Time: 1, Value: 100},
	}

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"Start", 0.0, 0},
		{"Quarter", 0.25, 25},
		{"Half", 0.5, 50},
		{"End", 1.0, 100},
		{"BeforeStart", -0.5, 0},
		{"AfterEnd", 1.5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(keyframes, tt.t, Linear)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("Evaluate(t=%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

// TestEvaluate_LineSweep 测试两行书写时的水平扫描轨迹
func TestEvaluate_LineSweep(t *testing.T) {
	// 0% -> 100% -> 0% -> 100% -> 100%
	keyframes := Keyframes(
		[]float64{0, 0.46, 0.5, 0.96, 1},
		[]float64{0, 100, 0, 100, 100},
	)

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.23, 50},
		{0.46, 100},
		{0.48, 50},
		{0.5, 0},
		{0.73, 50},
		{0.96, 100},
		{0.98, 100},
		{1, 100},
	}

	for _, tt := range tests {
		got := Evaluate(keyframes, tt.t, Linear)
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("Evaluate(t=%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

// TestEvaluate_EdgeCases tests edge cases
func TestEvaluate_EdgeCases(t *testing.T) {
	t.Run("Empty keyframes", func(t *testing.T) {
		if got := Evaluate(nil, 0.5, Linear); got != 0 {
			t.Errorf("Evaluate(empty) = %v, want 0", got)
		}
	})

	t.Run("Single keyframe", func(t *testing.T) {
		got := Evaluate([]Keyframe{{Time: 0.3, Value: 7}}, 0.9, Linear)
		if got != 7 {
			t.Errorf("Evaluate(single) = %v, want 7", got)
		}
	})

	t.Run("Zero length segment", func(t *testing.T) {
		keyframes := []Keyframe{{0, 1}, {0.5, 2}, {0.5, 9}, {1, 9}}
		if got := Evaluate(keyframes, 0.5, Linear); got != 2 {
			t.Errorf("Evaluate(0.5) = %v, want 2", got)
		}
		if got := Evaluate(keyframes, 0.75, Linear); got != 9 {
			t.Errorf("Evaluate(0.75) = %v, want 9", got)
		}
	})
}

// TestEvaluate_Interpolations tests the easing modes at the segment midpoint
func TestEvaluate_Interpolations(t *testing.T) {
	keyframes := []Keyframe{{0, 0}, {1, 100}}

	tests := []struct {
		interpolation string
		want          float64
	}{
		{Linear, 50},
		{EaseIn, 25},
		{EaseOut, 75},
		{FastInOutWeak, 50},
		{"Unknown", 50},
	}

	for _, tt := range tests {
		t.Run(tt.interpolation, func(t *testing.T) {
			got := Evaluate(keyframes, 0.5, tt.interpolation)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("Evaluate(0.5, %s) = %v, want %v", tt.interpolation, got, tt.want)
			}
		})
	}
}

func TestEvenlySpaced(t *testing.T) {
	kf := EvenlySpaced([]float64{3, -2, 4, 1, 0})
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i, k := range kf {
		if math.Abs(k.Time-want[i]) > 1e-9 {
			t.Errorf("keyframe %d time = %v, want %v", i, k.Time, want[i])
		}
	}

	single := EvenlySpaced([]float64{5})
	if len(single) != 1 || single[0].Time != 0 {
		t.Errorf("single value: got %+v", single)
	}
}

func TestKeyframesTruncatesToShorter(t *testing.T) {
	kf := Keyframes([]float64{0, 0.5, 1}, []float64{1, 2})
	if len(kf) != 2 {
		t.Fatalf("len = %d, want 2", len(kf))
	}
	if kf[1] != (Keyframe{Time: 0.5, Value: 2}) {
		t.Errorf("kf[1] = %+v", kf[1])
	}
}

func TestRandomInRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		v := RandomInRange(rnd, -5, 5)
		if v < -5 || v > 5 {
			t.Fatalf("RandomInRange = %v, out of [-5, 5]", v)
		}
	}

	// 全局随机源
	for i := 0; i < 100; i++ {
		v := RandomInRange(nil, 1, 2)
		if v < 1 || v > 2 {
			t.Fatalf("RandomInRange(nil) = %v, out of [1, 2]", v)
		}
	}

	if got := RandomInRange(rnd, 3, 3); got != 3 {
		t.Errorf("degenerate range: got %v, want 3", got)
	}
}
