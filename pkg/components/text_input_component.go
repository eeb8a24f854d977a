package components

// TextInputComponent 多行文本输入框组件
// 日记正文在这里输入，提交前不做长度限制，长度由表单校验负责
type TextInputComponent struct {
	// 输入框文本
	Text string // 当前输入的文本

	// 输入框尺寸
	Width  float64 // 输入框宽度（像素）
	Height float64 // 输入框高度（像素）

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）
	CursorPosition   int     // 光标位置（字符索引）

	Placeholder string // 占位符文本（输入框为空时显示）

	// 焦点状态
	IsFocused bool // 是否获得焦点（接收键盘输入）

	// ErrorMessage 校验错误，显示在输入框下方；为空时不显示
	ErrorMessage string

	// ScrollOffsetY 文本超出可见行数时的纵向滚动（像素）
	ScrollOffsetY float64

	// Padding 内边距（像素）
	Padding float64

	// OnSubmit Ctrl+Enter 时触发
	OnSubmit func()
}
