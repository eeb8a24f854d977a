package components

// PencilComponent 书写动画中的铅笔
//
// 铅笔的位置相对于书写文本块：OriginX/OriginY 是文本块左上角，
// Top 是相对文本块顶部的纵向偏移，LeftPercent 是相对文本宽度的百分比。
// 铅笔以左下角（笔尖）为旋转中心。
type PencilComponent struct {
	OriginX   float64 // 文本块左上角 X
	OriginY   float64 // 文本块左上角 Y
	TextWidth float64 // 文本块宽度

	Top         float64 // 纵向偏移（像素）
	LeftPercent float64 // 横向位置（0~100）
	Rotation    float64 // 旋转角度（度）
}

// BoxPosition 返回铅笔图标方框左上角的屏幕坐标
func (p *PencilComponent) BoxPosition() (x, y float64) {
	return p.OriginX + p.TextWidth*p.LeftPercent/100, p.OriginY + p.Top
}
