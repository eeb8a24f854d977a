// Package writing 生成铅笔"手写"动画的关键帧路径
//
// 铅笔沿换行后的文本逐行从左扫到右，每行末尾用一小段时间回到下一行行首，
// 最后停在最后一行的行尾。路径由排版测量结果计算得出，每次草稿变化都重新生成，
// 不做持久化。
package writing

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/gonewx/diary/internal/timeline"
	"github.com/gonewx/diary/pkg/config"
	"github.com/gonewx/diary/pkg/layout"
)

// ErrEmptyPath 行数为 0 时无法生成路径
// 调用方在草稿为空时不会调用 Generate，这里只做兜底
var ErrEmptyPath = errors.New("writing: cannot generate a path for zero lines")

// 时间轴上的属性名
const (
	TrackTop    = "top"
	TrackLeft   = "left"
	TrackRotate = "rotate"
)

// Path 铅笔动画路径
//
// Top、Left、Times 三个序列等长（2*LineCount+1），Times 同时驱动 Top 和 Left；
// Rotate 每行 10 个抖动采样，在整段时长内均匀分布。
type Path struct {
	LineCount int

	// Duration 动画时长（秒），不含 Delay
	Duration float64
	// Delay 开始前的延迟（秒）
	Delay float64

	// Top 纵向位置（像素，相对文本块顶部）
	Top []float64
	// Left 横向位置（百分比，0 或 100）
	Left []float64
	// Times 归一化时间点，从 0 单调不减到 1
	Times []float64
	// Rotate 旋转抖动（度）
	Rotate []float64
}

// Generate 根据排版测量结果生成动画路径
//
// rnd 为 nil 时使用全局随机源，旋转抖动每次运行都不同。
func Generate(m layout.Measurement, rnd *rand.Rand) (*Path, error) {
	lines := m.LineCount
	if lines <= 0 {
		return nil, ErrEmptyPath
	}

	p := &Path{
		LineCount: lines,
		Duration:  Duration(m.Width, lines),
		Delay:     config.WriteStartDelay,
		Top:       make([]float64, 0, 2*lines+1),
		Left:      make([]float64, 0, 2*lines+1),
		Times:     make([]float64, 0, 2*lines+1),
		Rotate:    make([]float64, 0, lines*config.RotationSamplesPerLine),
	}

	p.Top = append(p.Top, config.PencilTopOffset)
	for i := 0; i < lines; i++ {
		p.Left = append(p.Left, 0, 100)

		p.Top = append(p.Top,
			config.PencilTopOffset+float64(i)*config.LineHeight,
			config.PencilTopOffset+float64(i+1)*config.LineHeight,
		)

		for j := 0; j < config.RotationSamplesPerLine; j++ {
			p.Rotate = append(p.Rotate, timeline.RandomInRange(rnd, -config.RotationJitterDegrees, config.RotationJitterDegrees))
		}
	}

	// 最后一段不再下移：铅笔停在最后一行
	p.Top[len(p.Top)-1] = p.Top[len(p.Top)-2]
	p.Left = append(p.Left, 100)

	p.Times = lineTimings(lines)
	return p, nil
}

// Duration 计算铅笔动画时长（秒）
// 宽度按平均字宽折算成字符数，再乘以逐字显现间隔和行数
func Duration(width float64, lines int) float64 {
	if width <= 0 || lines <= 0 {
		return 0
	}
	return (width / config.AverageGlyphWidth) * config.CharRevealUnit * float64(lines)
}

// lineTimings 把 [0,1] 等分成 lines 段，每段前部用于横扫，末尾 LineChangeTime 用于换行
//
// 行数很多时换行时间最多占每段的一半，横扫始终保留正的时长，
// 铅笔不会在某一行上反向移动。最后一个时间点固定为 1。
func lineTimings(lines int) []float64 {
	split := 1 / float64(lines)
	lineChange := math.Min(config.LineChangeTime, split/2)

	times := make([]float64, 0, 2*lines+1)
	times = append(times, 0)

	count := 0.0
	for i := 0; i < lines; i++ {
		count += split - lineChange
		times = append(times, count)

		count += lineChange
		times = append(times, count)
	}

	times[len(times)-1] = 1
	return times
}

// Total 返回从开始到动画结束的总时间（秒）
func (p *Path) Total() float64 {
	return p.Delay + p.Duration
}

// LeftLabels 以百分比字符串返回横向关键帧，如 "0%"、"100%"
func (p *Path) LeftLabels() []string {
	labels := make([]string, len(p.Left))
	for i, v := range p.Left {
		labels[i] = fmt.Sprintf("%g%%", v)
	}
	return labels
}

// Timeline 转换为可播放的时间轴
// top、left 使用 Times，rotate 在 [0,1] 上均匀分布，全部线性插值
func (p *Path) Timeline() *timeline.Timeline {
	return &timeline.Timeline{
		Delay:    p.Delay,
		Duration: p.Duration,
		Tracks: []timeline.Track{
			{Name: TrackTop, Keyframes: timeline.Keyframes(p.Times, p.Top), Interpolation: timeline.Linear},
			{Name: TrackLeft, Keyframes: timeline.Keyframes(p.Times, p.Left), Interpolation: timeline.Linear},
			{Name: TrackRotate, Keyframes: timeline.EvenlySpaced(p.Rotate), Interpolation: timeline.Linear},
		},
	}
}
