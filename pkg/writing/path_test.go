package writing

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/gonewx/diary/pkg/config"
	"github.com/gonewx/diary/pkg/layout"
)

// TestGenerateSingleLine "Hello" 在 200x28 的容器里：1 行
func TestGenerateSingleLine(t *testing.T) {
	p, err := Generate(layout.Measurement{LineCount: 1, Width: 200, Height: 28}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	wantDuration := (200 / 7.8) * 0.007 * 1
	if math.Abs(p.Duration-wantDuration) > 1e-9 {
		t.Errorf("Duration = %v, want %v", p.Duration, wantDuration)
	}
	if math.Abs(p.Duration-0.1795) > 0.0001 {
		t.Errorf("Duration = %v, want ≈0.1795", p.Duration)
	}

	if want := []float64{-74, -74, -74}; !reflect.DeepEqual(p.Top, want) {
		t.Errorf("Top = %v, want %v", p.Top, want)
	}
	if want := []string{"0%", "100%", "100%"}; !reflect.DeepEqual(p.LeftLabels(), want) {
		t.Errorf("Left = %v, want %v", p.LeftLabels(), want)
	}
	if want := []float64{0, 0.96, 1}; !floatsNear(p.Times, want) {
		t.Errorf("Times = %v, want %v", p.Times, want)
	}
	if len(p.Rotate) != 10 {
		t.Errorf("len(Rotate) = %d, want 10", len(p.Rotate))
	}
	if p.Delay != config.WriteStartDelay {
		t.Errorf("Delay = %v, want %v", p.Delay, config.WriteStartDelay)
	}
	if math.Abs(p.Total()-(wantDuration+0.5)) > 1e-9 {
		t.Errorf("Total = %v", p.Total())
	}
}

func TestGenerateTwoLines(t *testing.T) {
	p, err := Generate(layout.Measurement{LineCount: 2, Width: 300, Height: 56}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if want := []float64{-74, -74, -46, -46, -46}; !reflect.DeepEqual(p.Top, want) {
		t.Errorf("Top = %v, want %v", p.Top, want)
	}
	if want := []float64{0, 100, 0, 100, 100}; !reflect.DeepEqual(p.Left, want) {
		t.Errorf("Left = %v, want %v", p.Left, want)
	}
	if want := []float64{0, 0.46, 0.5, 0.96, 1}; !floatsNear(p.Times, want) {
		t.Errorf("Times = %v, want %v", p.Times, want)
	}
}

// TestGenerateInvariants 各序列长度与单调性
func TestGenerateInvariants(t *testing.T) {
	for lines := 1; lines <= 150; lines++ {
		p, err := Generate(layout.Measurement{LineCount: lines, Width: 480, Height: float64(lines) * 28}, nil)
		if err != nil {
			t.Fatalf("lines=%d: %v", lines, err)
		}

		n := 2*lines + 1
		if len(p.Top) != n || len(p.Left) != n || len(p.Times) != n {
			t.Fatalf("lines=%d: lengths top=%d left=%d times=%d, want %d", lines, len(p.Top), len(p.Left), len(p.Times), n)
		}
		if p.Top[n-1] != p.Top[n-2] {
			t.Errorf("lines=%d: last two top keyframes differ: %v", lines, p.Top[n-2:])
		}
		if p.Times[0] != 0 || p.Times[n-1] != 1 {
			t.Errorf("lines=%d: times should span [0,1], got %v..%v", lines, p.Times[0], p.Times[n-1])
		}
		for i := 1; i < n; i++ {
			if p.Times[i] < p.Times[i-1] {
				t.Errorf("lines=%d: times decrease at %d: %v -> %v", lines, i, p.Times[i-1], p.Times[i])
			}
		}
		for i := 0; i < lines; i++ {
			if p.Times[2*i+1] <= p.Times[2*i] {
				t.Errorf("lines=%d: line %d sweep has no duration: %v -> %v", lines, i, p.Times[2*i], p.Times[2*i+1])
			}
		}
		if len(p.Rotate) != 10*lines {
			t.Errorf("lines=%d: len(Rotate) = %d", lines, len(p.Rotate))
		}
		for _, r := range p.Rotate {
			if r < -5 || r > 5 {
				t.Errorf("lines=%d: rotation %v out of [-5, 5]", lines, r)
			}
		}
	}
}

// TestDurationScalesLinearly 时长与行数、宽度成正比
func TestDurationScalesLinearly(t *testing.T) {
	base := Duration(200, 1)
	if got := Duration(200, 3); math.Abs(got-3*base) > 1e-9 {
		t.Errorf("Duration(200, 3) = %v, want %v", got, 3*base)
	}
	if got := Duration(600, 1); math.Abs(got-3*base) > 1e-9 {
		t.Errorf("Duration(600, 1) = %v, want %v", got, 3*base)
	}
	if got := Duration(0, 2); got != 0 {
		t.Errorf("Duration(0, 2) = %v, want 0", got)
	}
}

// TestManyLinesSweepLeftToRight 行数很多时铅笔每行仍从左往右移动
func TestManyLinesSweepLeftToRight(t *testing.T) {
	p, err := Generate(layout.Measurement{LineCount: 100, Width: 50, Height: 2800}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tl := p.Timeline()
	total := p.Duration
	for _, line := range []int{0, 10, 99} {
		start, end := p.Times[2*line], p.Times[2*line+1]
		mid := (start + end) / 2
		v := tl.Sample(p.Delay + mid*total)[TrackLeft]
		if v <= 0 || v >= 100 {
			t.Errorf("line %d: mid-sweep left = %v, want in (0,100)", line, v)
		}
		if math.Abs(v-50) > 1e-6 {
			t.Errorf("line %d: mid-sweep left = %v, want 50", line, v)
		}
	}
}

func TestGenerateZeroLines(t *testing.T) {
	_, err := Generate(layout.Measurement{}, nil)
	if !errors.Is(err, ErrEmptyPath) {
		t.Errorf("err = %v, want ErrEmptyPath", err)
	}
}

// TestRotationIsRandom 两次生成的抖动不同
func TestRotationIsRandom(t *testing.T) {
	m := layout.Measurement{LineCount: 2, Width: 300, Height: 56}
	a, _ := Generate(m, nil)
	b, _ := Generate(m, nil)
	if reflect.DeepEqual(a.Rotate, b.Rotate) {
		t.Error("rotation jitter should differ between runs")
	}
}

// TestTimelineSampling 时间轴在关键时刻的取值
func TestTimelineSampling(t *testing.T) {
	p, err := Generate(layout.Measurement{LineCount: 2, Width: 780, Height: 56}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tl := p.Timeline()

	// 延迟期间停在起点
	start := tl.Sample(0.1)
	if start[TrackTop] != -74 || start[TrackLeft] != 0 {
		t.Errorf("during delay: top=%v left=%v", start[TrackTop], start[TrackLeft])
	}

	// 第一行扫到一半
	mid := tl.Sample(p.Delay + 0.23*p.Duration)
	if math.Abs(mid[TrackLeft]-50) > 1e-6 || mid[TrackTop] != -74 {
		t.Errorf("mid first line: top=%v left=%v", mid[TrackTop], mid[TrackLeft])
	}

	// 结束时停在最后一行行尾
	end := tl.Sample(p.Total() + 1)
	if end[TrackTop] != -46 || end[TrackLeft] != 100 {
		t.Errorf("end: top=%v left=%v", end[TrackTop], end[TrackLeft])
	}

	rotate, ok := tl.Track(TrackRotate)
	if !ok || len(rotate.Keyframes) != 20 {
		t.Errorf("rotate track: ok=%v len=%d", ok, len(rotate.Keyframes))
	}
}

func TestLetterOpacityPath(t *testing.T) {
	if got := LetterOpacity(0, 0.3); got != 0 {
		t.Errorf("before delay: %v", got)
	}
	if got := LetterOpacity(0, 0.4+LetterFadeDuration/2); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("half way: %v", got)
	}
	if got := LetterOpacity(10, 10); got != 1 {
		t.Errorf("long after: %v", got)
	}
	// 后面的字符晚于前面的字符
	if LetterRevealStart(5) <= LetterRevealStart(4) {
		t.Error("reveal start should increase with index")
	}
	if got := RevealDuration(0); got != 0 {
		t.Errorf("RevealDuration(0) = %v", got)
	}
}

func floatsNear(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			return false
		}
	}
	return true
}
