package config

// 布局与书写动画常量
// 本文件定义日记页面的布局参数，以及铅笔书写动画使用的固定数值

// Window (窗口配置)
const (
	// WindowWidth 逻辑屏幕宽度（像素）
	WindowWidth = 1024

	// WindowHeight 逻辑屏幕高度（像素）
	WindowHeight = 768

	// PageMargin 页面左右边距
	PageMargin = 32.0

	// ContentWidth 页面内容区宽度 = 窗口宽度 - 两侧边距
	ContentWidth = WindowWidth - 2*PageMargin // 960
)

// Text layout (文本排版)
const (
	// LineHeight 书写区域的固定行高（像素）
	// 与横格纸背景的行距一致
	LineHeight = 28.0

	// FontSize 正文字号
	FontSize = 16.0

	// HeadingFontSize 标题字号（"Dear Diary..."）
	HeadingFontSize = 22.0

	// SmallFontSize 日期、错误提示字号
	SmallFontSize = 13.0

	// TextAreaRows 输入框可见行数
	TextAreaRows = 6

	// CardPadding 卡片内边距（对应 p-4）
	CardPadding = 16.0

	// MeasureInset 测量元素的外边距（对应 m-4）
	MeasureInset = 16.0

	// PageColumns 历史日记网格列数
	PageColumns = 3

	// PageGap 网格间距
	PageGap = 16.0
)

// Writing animation (书写动画)
// 铅笔沿已换行的文本从左到右、逐行移动，最后停在最后一行
const (
	// PencilTopOffset 铅笔起始的纵向偏移
	// 铅笔图标高 96 像素，笔尖在左下角，-74 让笔尖落在第一行
	PencilTopOffset = -74.0

	// PencilSize 铅笔图标边长（对应 h-24 w-24）
	PencilSize = 96.0

	// CharRevealUnit 逐字显现的间隔（秒）
	// 与铅笔动画时长公式共用，保证笔迹与文字显现大致同步
	CharRevealUnit = 0.007

	// AverageGlyphWidth 估算字符数时使用的平均字宽（像素）
	AverageGlyphWidth = 7.8

	// LineChangeTime 每行末尾换行停顿占整段时间的比例
	LineChangeTime = 0.04

	// WriteStartDelay 铅笔动画开始前的延迟（秒）
	WriteStartDelay = 0.5

	// LetterRevealDelay 第一个字开始显现前的延迟（秒）
	LetterRevealDelay = 0.4

	// RotationSamplesPerLine 每行生成的抖动角度采样数
	RotationSamplesPerLine = 10

	// RotationJitterDegrees 抖动角度范围 [-N, N]（度）
	RotationJitterDegrees = 5.0

	// PageFadeInDuration 日记页卡片淡入时长（秒）
	PageFadeInDuration = 0.5

	// PageFadeInOffsetY 卡片淡入时的起始纵向偏移（像素）
	PageFadeInOffsetY = -50.0
)

// Entry rules (日记条目规则)
const (
	// MaxEntryLength 单条日记最大字符数
	MaxEntryLength = 300
)

// EntriesQueryKey 日记列表在查询缓存中的键
const EntriesQueryKey = "getEntries"

// MeasureWidth 返回书写区域用于换行测量的容器宽度
// 书写卡片宽度为内容区宽度，减去卡片内边距和测量元素外边距
func MeasureWidth(contentWidth float64) float64 {
	w := contentWidth - 2*CardPadding - 2*MeasureInset
	if w < 0 {
		return 0
	}
	return w
}
