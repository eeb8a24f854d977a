package systems

import (
	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/ecs"
	"github.com/gonewx/diary/pkg/utils"
)

// MouseState 一帧内的鼠标输入
type MouseState struct {
	X, Y     float64
	Pressed  bool
	Released bool
}

// ButtonSystem 按钮交互系统
// 负责处理按钮的鼠标悬停、点击等交互逻辑
type ButtonSystem struct {
	entityManager *ecs.EntityManager

	// readMouse 读取当前鼠标状态，测试中可替换
	readMouse func() MouseState
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		readMouse:     currentMouse,
	}
}

// currentMouse 读取鼠标或触摸输入
func currentMouse() MouseState {
	p := utils.ReadPointer()
	return MouseState{
		X:        float64(p.X),
		Y:        float64(p.Y),
		Pressed:  p.Pressed,
		Released: p.JustReleased,
	}
}

// Update 更新按钮交互状态
func (s *ButtonSystem) Update(deltaTime float64) {
	s.Apply(s.readMouse())
}

// Apply 按给定鼠标状态更新所有按钮，释放时触发回调
func (s *ButtonSystem) Apply(mouse MouseState) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !pointInRect(mouse.X, mouse.Y, pos.X, pos.Y, button.Width, button.Height) {
			button.State = components.UINormal
			continue
		}

		switch {
		case mouse.Pressed:
			button.State = components.UIClicked
		case mouse.Released:
			// 释放瞬间触发回调
			button.State = components.UIHovered
			if button.OnClick != nil {
				button.OnClick()
			}
		default:
			button.State = components.UIHovered
		}
	}
}

// pointInRect 检测点是否在矩形范围内
func pointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
