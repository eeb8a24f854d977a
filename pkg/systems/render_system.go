package systems

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/config"
	"github.com/gonewx/diary/pkg/ecs"
	"github.com/gonewx/diary/pkg/utils"
	"github.com/gonewx/diary/pkg/writing"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 界面配色
var (
	colorInk          = color.RGBA{40, 40, 48, 255}
	colorPlaceholder  = color.RGBA{150, 150, 160, 255}
	colorError        = color.RGBA{200, 40, 40, 255}
	colorPaper        = color.RGBA{255, 255, 255, 255}
	colorBorder       = color.RGBA{200, 200, 210, 255}
	colorBorderActive = color.RGBA{90, 140, 220, 255}
	colorRule         = color.RGBA{0xd9, 0xf0, 0xff, 255} // 横格线
	colorButton       = color.RGBA{60, 110, 200, 255}
	colorButtonHover  = color.RGBA{80, 135, 230, 255}
	colorButtonDown   = color.RGBA{45, 85, 160, 255}
	colorButtonOff    = color.RGBA{170, 175, 185, 255}
	colorPencilBody   = color.RGBA{245, 196, 60, 255}
	colorPencilWood   = color.RGBA{235, 205, 160, 255}
	colorPencilLead   = color.RGBA{50, 50, 50, 255}
	colorPencilEraser = color.RGBA{235, 130, 150, 255}
)

// RenderSystem 渲染系统
// 按 卡片 → 输入框 → 按钮 → 书写文本 → 铅笔 的顺序绘制
type RenderSystem struct {
	entityManager *ecs.EntityManager

	bodyFont  *text.GoTextFace
	smallFont *text.GoTextFace

	// CardClip 卡片的可见区域，为空时不裁剪
	CardClip image.Rectangle
}

// NewRenderSystem 创建渲染系统
// 字体为 nil 时对应的文字不绘制
func NewRenderSystem(em *ecs.EntityManager, bodyFont, smallFont *text.GoTextFace) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		bodyFont:      bodyFont,
		smallFont:     smallFont,
	}
}

// Draw 绘制所有可见实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.drawEntryCards(screen)
	s.drawTextInputs(screen)
	s.drawButtons(screen)
	s.drawLetterReveals(screen)
	s.drawPencils(screen)
}

// drawEntryCards 绘制历史日记页卡片
func (s *RenderSystem) drawEntryCards(screen *ebiten.Image) {
	if !s.CardClip.Empty() {
		screen = screen.SubImage(s.CardClip).(*ebiten.Image)
	}
	entities := ecs.GetEntitiesWith2[*components.EntryCardComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		card, _ := ecs.GetComponent[*components.EntryCardComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		alpha, shiftY := 1.0, 0.0
		if fade, ok := ecs.GetComponent[*components.FadeInComponent](s.entityManager, id); ok {
			alpha, shiftY = fade.Opacity, fade.ShiftY
		}
		if alpha <= 0 {
			continue
		}

		x, y := float32(pos.X), float32(pos.Y+shiftY)
		w, h := float32(card.Width), float32(card.Height)
		vector.DrawFilledRect(screen, x, y, w, h, withAlpha(colorPaper, alpha), true)
		vector.StrokeRect(screen, x, y, w, h, 1, withAlpha(colorBorder, alpha), true)

		pad := config.CardPadding
		s.drawString(screen, card.Date, s.smallFont, pos.X+pad, pos.Y+shiftY+pad, colorPlaceholder, alpha)

		top := pos.Y + shiftY + pad + config.LineHeight
		for i, line := range card.Lines {
			lineY := top + float64(i)*config.LineHeight
			rule := float32(lineY + config.LineHeight - 4)
			vector.StrokeLine(screen, x+float32(pad), rule, x+w-float32(pad), rule, 1, withAlpha(colorRule, alpha), true)
			s.drawString(screen, line, s.bodyFont, pos.X+pad, lineY, colorInk, alpha)
		}
	}
}

// drawTextInputs 绘制多行输入框、光标与校验错误
func (s *RenderSystem) drawTextInputs(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.TextInputComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		x, y := float32(pos.X), float32(pos.Y)
		w, h := float32(input.Width), float32(input.Height)
		border := colorBorder
		if input.IsFocused {
			border = colorBorderActive
		}
		if input.ErrorMessage != "" {
			border = colorError
		}
		vector.DrawFilledRect(screen, x, y, w, h, colorPaper, true)
		vector.StrokeRect(screen, x, y, w, h, 2, border, true)

		innerX := pos.X + input.Padding
		innerY := pos.Y + input.Padding
		innerW := input.Width - 2*input.Padding
		innerH := input.Height - 2*input.Padding
		measure := utils.FaceWidth(s.bodyFont)

		if input.Text == "" {
			s.drawString(screen, input.Placeholder, s.bodyFont, innerX, innerY, colorPlaceholder, 1)
		} else {
			caretLine, _ := CaretPosition(input.Text, input.CursorPosition, measure, innerW)
			input.ScrollOffsetY = ScrollToLine(input.ScrollOffsetY, caretLine, config.LineHeight, innerH)

			for i, line := range utils.WrapText(input.Text, measure, innerW) {
				lineY := innerY + float64(i)*config.LineHeight - input.ScrollOffsetY
				if lineY < innerY-0.5 || lineY+config.LineHeight > innerY+innerH+0.5 {
					continue
				}
				s.drawString(screen, line, s.bodyFont, innerX, lineY, colorInk, 1)
			}
		}

		if input.IsFocused && input.CursorVisible {
			line, cx := CaretPosition(input.Text, input.CursorPosition, measure, innerW)
			caretY := innerY + float64(line)*config.LineHeight - input.ScrollOffsetY
			if caretY >= innerY-0.5 && caretY+config.LineHeight <= innerY+innerH+0.5 {
				vector.StrokeLine(screen, float32(innerX+cx), float32(caretY+4), float32(innerX+cx), float32(caretY+config.LineHeight-4), 1.5, colorInk, true)
			}
		}

		if input.ErrorMessage != "" {
			s.drawString(screen, input.ErrorMessage, s.smallFont, pos.X, pos.Y+input.Height+4, colorError, 1)
		}
	}
}

// drawButtons 绘制按钮
func (s *RenderSystem) drawButtons(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		fill := colorButton
		switch button.State {
		case components.UIHovered:
			fill = colorButtonHover
		case components.UIClicked:
			fill = colorButtonDown
		case components.UIDisabled:
			fill = colorButtonOff
		}
		vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(button.Width), float32(button.Height), fill, true)

		if s.bodyFont == nil {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(pos.X+button.Width/2, pos.Y+button.Height/2)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, button.Text, s.bodyFont, op)
	}
}

// drawLetterReveals 逐字淡入绘制书写中的文本
func (s *RenderSystem) drawLetterReveals(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.LetterRevealComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		reveal, _ := ecs.GetComponent[*components.LetterRevealComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		for _, g := range reveal.Glyphs {
			alpha := writing.LetterOpacity(g.Index, reveal.Elapsed)
			if alpha <= 0 || strings.TrimSpace(g.Text) == "" {
				continue
			}
			s.drawString(screen, g.Text, s.bodyFont, pos.X+g.X, pos.Y+float64(g.Line)*reveal.LineHeight, colorInk, alpha)
		}
	}
}

// drawPencils 绘制铅笔，以笔尖为中心旋转
func (s *RenderSystem) drawPencils(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.PencilComponent](s.entityManager) {
		pencil, _ := ecs.GetComponent[*components.PencilComponent](s.entityManager, id)

		seg := PencilSegments(pencil)
		drawSegment(screen, seg.Body, float32(config.PencilSize)*0.12, colorPencilBody)
		drawSegment(screen, seg.Wood, float32(config.PencilSize)*0.09, colorPencilWood)
		drawSegment(screen, seg.Lead, float32(config.PencilSize)*0.04, colorPencilLead)
		drawSegment(screen, seg.Eraser, float32(config.PencilSize)*0.12, colorPencilEraser)
	}
}

// drawString 在 (x, y) 绘制一行文字，y 为行顶部
func (s *RenderSystem) drawString(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color, alpha float64) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	// 行高大于字号，文字在行内垂直居中
	op.GeoM.Translate(x, y+(config.LineHeight-face.Size)/2)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, face, op)
}

// Segment 一段线段（屏幕坐标）
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// PencilShape 铅笔各部分的线段
type PencilShape struct {
	Lead   Segment // 笔尖
	Wood   Segment // 削过的木头
	Body   Segment // 笔杆
	Eraser Segment // 橡皮
}

// PencilSegments 计算铅笔各部分的位置
//
// 铅笔图标占据 PencilSize 见方的方框，笔尖在方框左下角，
// 笔杆朝右上方 45° 延伸，Rotation 以笔尖为中心顺时针旋转（度）。
func PencilSegments(p *components.PencilComponent) PencilShape {
	boxX, boxY := p.BoxPosition()
	tipX, tipY := boxX, boxY+config.PencilSize

	length := config.PencilSize * math.Sqrt2
	angle := (-45 + p.Rotation) * math.Pi / 180
	dx, dy := math.Cos(angle), math.Sin(angle)

	at := func(f float64) (float64, float64) {
		return tipX + dx*length*f, tipY + dy*length*f
	}
	seg := func(from, to float64) Segment {
		x0, y0 := at(from)
		x1, y1 := at(to)
		return Segment{X0: x0, Y0: y0, X1: x1, Y1: y1}
	}

	return PencilShape{
		Lead:   seg(0, 0.06),
		Wood:   seg(0.04, 0.18),
		Body:   seg(0.18, 0.88),
		Eraser: seg(0.88, 1),
	}
}

func drawSegment(screen *ebiten.Image, s Segment, width float32, clr color.Color) {
	vector.StrokeLine(screen, float32(s.X0), float32(s.Y0), float32(s.X1), float32(s.Y1), width, clr, true)
}

// CaretPosition 返回光标所在的换行后行号与行内 X 坐标
func CaretPosition(str string, cursor int, width utils.WidthFunc, maxWidth float64) (line int, x float64) {
	runes := []rune(str)
	cursor = clampCursor(cursor, len(runes))
	prefix := string(runes[:cursor])
	if prefix == "" {
		return 0, 0
	}

	lines := utils.WrapText(prefix, width, maxWidth)
	line = len(lines) - 1
	if width == nil {
		return line, 0
	}
	x = width(lines[line])
	// 行尾空白在换行时被折叠，光标仍应落在空格之后
	if strings.HasSuffix(prefix, " ") && lines[line] != "" {
		x += width(" ")
	}
	if maxWidth > 0 && x > maxWidth {
		x = maxWidth
	}
	return line, x
}

// ScrollToLine 调整纵向滚动，使第 line 行落在可见区域内
func ScrollToLine(offset float64, line int, lineHeight, visibleHeight float64) float64 {
	top := float64(line) * lineHeight
	bottom := top + lineHeight
	switch {
	case top < offset:
		return top
	case bottom > offset+visibleHeight:
		return bottom - visibleHeight
	}
	return offset
}

func withAlpha(c color.RGBA, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	a := float64(c.A) * alpha
	// vector 绘制使用预乘 alpha
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(a),
	}
}
