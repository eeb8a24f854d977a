package components

// EntryCardComponent 历史日记页卡片
type EntryCardComponent struct {
	TS    string   // 条目标识，同一条目只创建一次卡片
	Date  string   // 显示日期
	Lines []string // 按卡片宽度换行后的正文

	Width  float64
	Height float64
}

// FadeInComponent 淡入动画：透明度 0→1，纵向偏移 OffsetY→0
type FadeInComponent struct {
	Duration float64 // 时长（秒）
	Elapsed  float64 // 已播放时间（秒）
	OffsetY  float64 // 起始纵向偏移（像素）

	Opacity float64 // 当前透明度
	ShiftY  float64 // 当前纵向偏移
}
