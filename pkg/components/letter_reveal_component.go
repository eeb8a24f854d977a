package components

// Glyph 逐字显现中的一个字符（字素簇）
type Glyph struct {
	Text  string  // 字符
	X     float64 // 相对文本块左上角的 X
	Line  int     // 所在行
	Index int     // 全文中的序号，决定显现时间
}

// LetterRevealComponent 逐字淡入的文本块
// 位置由同实体的 PositionComponent 给出（文本块左上角）
type LetterRevealComponent struct {
	Glyphs     []Glyph
	LineHeight float64
	Elapsed    float64 // 已显示时间（秒）
}
