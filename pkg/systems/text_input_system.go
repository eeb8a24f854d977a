package systems

import (
	"strings"

	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 按住按键时的重复节奏：第 1 帧立即响应，30 帧后每 3 帧响应一次
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// TextInputSystem 文本输入系统
// 处理文本输入框的键盘输入、光标闪烁等逻辑
type TextInputSystem struct {
	entityManager *ecs.EntityManager
}

// NewTextInputSystem 创建文本输入系统
func NewTextInputSystem(em *ecs.EntityManager) *TextInputSystem {
	return &TextInputSystem{
		entityManager: em,
	}
}

// Update 更新文本输入系统
func (s *TextInputSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager)

	for _, entityID := range entities {
		input, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, entityID)
		if !ok {
			continue
		}

		// 只处理获得焦点的输入框
		if !input.IsFocused {
			input.CursorVisible = false
			continue
		}

		s.updateCursorBlink(input, deltaTime)
		s.handleKeyboardInput(input)
	}
}

// updateCursorBlink 更新光标闪烁状态
func (s *TextInputSystem) updateCursorBlink(input *components.TextInputComponent, deltaTime float64) {
	const blinkInterval = 0.5 // 光标闪烁间隔（秒）

	input.CursorBlinkTimer += deltaTime
	if input.CursorBlinkTimer >= blinkInterval {
		input.CursorBlinkTimer = 0
		input.CursorVisible = !input.CursorVisible
	}
}

// repeating 按键刚按下或按住达到重复节奏时返回 true
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= keyRepeatDelay && d%keyRepeatInterval == 0)
}

// handleKeyboardInput 处理键盘输入
func (s *TextInputSystem) handleKeyboardInput(input *components.TextInputComponent) {
	edited := false

	// 1. 文本字符
	if runes := ebiten.AppendInputChars(nil); len(runes) > 0 {
		InsertText(input, string(runes))
		edited = true
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	// 2. 回车：Ctrl+Enter 提交，否则换行
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		if ctrl {
			if input.OnSubmit != nil {
				input.OnSubmit()
			}
			return
		}
		InsertText(input, "\n")
		edited = true
	}

	// 3. 删除与光标移动，支持按住连续触发
	switch {
	case repeating(ebiten.KeyBackspace):
		DeleteCharBefore(input)
		edited = true
	case repeating(ebiten.KeyDelete):
		DeleteCharAfter(input)
		edited = true
	case repeating(ebiten.KeyArrowLeft):
		MoveCursor(input, -1)
		edited = true
	case repeating(ebiten.KeyArrowRight):
		MoveCursor(input, 1)
		edited = true
	}

	// 4. Home / End 移到当前行首 / 行尾
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		input.CursorPosition = lineStart(input)
		edited = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		input.CursorPosition = lineEnd(input)
		edited = true
	}

	if edited {
		// 编辑后光标立即可见，并清除上一次提交的校验错误
		input.CursorBlinkTimer = 0
		input.CursorVisible = true
		input.ErrorMessage = ""
	}
}

// InsertText 在光标位置插入文本
func InsertText(input *components.TextInputComponent, text string) {
	if text == "" {
		return
	}
	// 统一换行符，去掉其他控制字符
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r >= 0x20 && r != 0x7f {
			return r
		}
		if r == '\r' {
			return -1
		}
		if r == '\t' {
			return ' '
		}
		return -1
	}, text)

	textRunes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(textRunes))
	newRunes := []rune(text)

	result := make([]rune, 0, len(textRunes)+len(newRunes))
	result = append(result, textRunes[:pos]...)
	result = append(result, newRunes...)
	result = append(result, textRunes[pos:]...)

	input.Text = string(result)
	input.CursorPosition = pos + len(newRunes)
}

// DeleteCharBefore 删除光标前的字符（退格）
func DeleteCharBefore(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	if pos == 0 {
		return
	}

	input.Text = string(append(runes[:pos-1:pos-1], runes[pos:]...))
	input.CursorPosition = pos - 1
}

// DeleteCharAfter 删除光标后的字符（Delete键）
func DeleteCharAfter(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	if pos >= len(runes) {
		return
	}

	input.Text = string(append(runes[:pos:pos], runes[pos+1:]...))
	input.CursorPosition = pos
}

// MoveCursor 光标左右移动 delta 个字符
func MoveCursor(input *components.TextInputComponent, delta int) {
	input.CursorPosition = clampCursor(input.CursorPosition+delta, len([]rune(input.Text)))
}

// SetText 替换全部文本，光标移到末尾
func SetText(input *components.TextInputComponent, text string) {
	input.Text = ""
	input.CursorPosition = 0
	InsertText(input, text)
}

// Reset 清空输入框
func Reset(input *components.TextInputComponent) {
	input.Text = ""
	input.CursorPosition = 0
	input.ScrollOffsetY = 0
}

func clampCursor(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}

// lineStart 返回光标所在行的行首位置
func lineStart(input *components.TextInputComponent) int {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	for pos > 0 && runes[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd 返回光标所在行的行尾位置
func lineEnd(input *components.TextInputComponent) int {
	runes := []rune(input.Text)
	pos := clampCursor(input.CursorPosition, len(runes))
	for pos < len(runes) && runes[pos] != '\n' {
		pos++
	}
	return pos
}
