// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 一帧内的指针输入（鼠标或触摸）
type PointerState struct {
	X, Y         int
	Pressed      bool // 左键按住或有活动触摸
	JustReleased bool // 本帧刚释放
	IsTouch      bool
}

// 保存最后一次触摸位置（触摸释放时已经拿不到位置）
var lastTouchX, lastTouchY int

// ReadPointer 读取当前帧的指针状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func ReadPointer() PointerState {
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		return PointerState{X: lastTouchX, Y: lastTouchY, JustReleased: true, IsTouch: true}
	}

	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
		return PointerState{X: lastTouchX, Y: lastTouchY, Pressed: true, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		X:            x,
		Y:            y,
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// WheelDelta 返回本帧的纵向滚动量（像素）
// 鼠标滚轮每格折算为 step 像素
func WheelDelta(step float64) float64 {
	_, dy := ebiten.Wheel()
	return -dy * step
}
