package components

// ButtonComponent 按钮组件
//
// 纯数据组件：尺寸、文字、交互状态和点击回调。
// 交互由 ButtonSystem 处理，绘制由 RenderSystem 负责。
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string

	// Width 按钮宽度（像素）
	Width float64
	// Height 按钮高度（像素）
	Height float64

	// State 当前交互状态
	State UIState
	// Enabled 是否响应点击
	Enabled bool

	// OnClick 鼠标在按钮内释放时触发
	OnClick func()
}
