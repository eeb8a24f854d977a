package config

import "testing"

// TestMeasureWidth 书写区域宽度 = 内容宽度 - 卡片内边距 - 测量元素外边距
func TestMeasureWidth(t *testing.T) {
	tests := []struct {
		name         string
		contentWidth float64
		want         float64
	}{
		{"默认窗口", ContentWidth, 896},
		{"窄窗口", 300, 236},
		{"小于边距", 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeasureWidth(tt.contentWidth); got != tt.want {
				t.Errorf("MeasureWidth(%v) = %v, want %v", tt.contentWidth, got, tt.want)
			}
		})
	}
}

// TestPencilStartsOnFirstLine 铅笔方框底边（笔尖）落在第一行内
func TestPencilStartsOnFirstLine(t *testing.T) {
	tip := PencilTopOffset + PencilSize
	if tip <= 0 || tip > LineHeight {
		t.Errorf("pencil tip at %v, want within the first line (0, %v]", tip, LineHeight)
	}
}
