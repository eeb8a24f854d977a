// Package layout 测量文本在固定宽度容器中的排版结果
//
// 书写动画只关心三件事：文本换成几行、最宽一行多宽、总高度多少。
// 测量能力以 Measurer 接口注入，桌面端使用 ebiten 字体实现，
// 测试与命令行工具可以换成任意宽度函数。
package layout

import (
	"errors"
	"math"

	"github.com/gonewx/diary/pkg/config"
	"github.com/gonewx/diary/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ErrNoTarget 测量目标（字体或容器）不存在
// 调用方应静默跳过渲染与动画，不能崩溃
var ErrNoTarget = errors.New("layout: measurement target not available")

// subPixelTolerance 计算行数时忽略的亚像素误差
const subPixelTolerance = 0.01

// Measurement 文本排版测量结果
type Measurement struct {
	// LineCount 换行后的行数
	LineCount int
	// Width 渲染宽度（最宽一行，不超过容器宽度）
	Width float64
	// Height 渲染高度 = 行数 × 行高
	Height float64
	// Lines 换行后的各行文本，渲染时按同样的断行绘制
	Lines []string
}

// Measurer 文本排版测量能力
type Measurer interface {
	Measure(text string) (Measurement, error)
}

// WrapMeasurer 按固定容器宽度、固定行高换行测量
type WrapMeasurer struct {
	Width          utils.WidthFunc
	ContainerWidth float64
	LineHeight     float64
}

// NewFaceMeasurer 创建使用 ebiten 字体测量的 WrapMeasurer
// face 为 nil 时测量返回 ErrNoTarget
func NewFaceMeasurer(face *text.GoTextFace, containerWidth float64) *WrapMeasurer {
	return &WrapMeasurer{
		Width:          utils.FaceWidth(face),
		ContainerWidth: containerWidth,
		LineHeight:     config.LineHeight,
	}
}

// Measure 测量文本
//
// 空文本返回零值测量结果（0 行），不报错。
func (m *WrapMeasurer) Measure(s string) (Measurement, error) {
	if m == nil || m.Width == nil || m.ContainerWidth <= 0 || m.LineHeight <= 0 {
		return Measurement{}, ErrNoTarget
	}
	if s == "" {
		return Measurement{}, nil
	}

	lines := utils.WrapText(s, m.Width, m.ContainerWidth)
	width := math.Min(utils.MaxLineWidth(lines, m.Width), m.ContainerWidth)
	height := float64(len(lines)) * m.LineHeight

	return Measurement{
		LineCount: LineCountFor(height, m.LineHeight),
		Width:     width,
		Height:    height,
		Lines:     lines,
	}, nil
}

// LineCountFor 根据渲染高度计算行数
//
// 高度恰好是行高整数倍时返回该倍数；
// 亚像素渲染带来的微小误差（< 0.01 像素）先被抹掉，然后向上取整，
// 半行也算一行。
func LineCountFor(height, lineHeight float64) int {
	if height <= 0 || lineHeight <= 0 {
		return 0
	}
	lines := height / lineHeight
	rounded := math.Round(lines)
	if math.Abs(lines-rounded)*lineHeight < subPixelTolerance {
		return int(rounded)
	}
	return int(math.Ceil(lines))
}
