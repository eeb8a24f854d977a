package systems

import (
	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/ecs"
	"github.com/gonewx/diary/pkg/utils"
)

// LetterRevealSystem 推进逐字显现计时
// 每个字符的透明度在绘制时由 writing.LetterOpacity 计算
type LetterRevealSystem struct {
	entityManager *ecs.EntityManager
}

// NewLetterRevealSystem 创建逐字显现系统
func NewLetterRevealSystem(em *ecs.EntityManager) *LetterRevealSystem {
	return &LetterRevealSystem{entityManager: em}
}

// Update 累加显示时间
func (s *LetterRevealSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LetterRevealComponent](s.entityManager) {
		reveal, _ := ecs.GetComponent[*components.LetterRevealComponent](s.entityManager, id)
		if deltaTime > 0 {
			reveal.Elapsed += deltaTime
		}
	}
}

// LayoutGlyphs 把换行后的文本拆成逐个显现的字符
// 按字素簇拆分，X 为该字符之前同一行文本的宽度，Index 跨行连续编号
func LayoutGlyphs(lines []string, width utils.WidthFunc) []components.Glyph {
	var glyphs []components.Glyph
	index := 0
	for lineNo, line := range lines {
		prefix := ""
		for _, g := range utils.SplitGraphemes(line) {
			x := 0.0
			if width != nil {
				x = width(prefix)
			}
			glyphs = append(glyphs, components.Glyph{Text: g, X: x, Line: lineNo, Index: index})
			prefix += g
			index++
		}
	}
	return glyphs
}
