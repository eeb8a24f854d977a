package components

import (
	"github.com/gonewx/diary/internal/timeline"
	"github.com/gonewx/diary/pkg/writing"
)

// WritingAnimationComponent 铅笔书写动画状态
// Player 播放 Path 生成的时间轴，WritingAnimationSystem 每帧推进并写回 PencilComponent
type WritingAnimationComponent struct {
	Path   *writing.Path
	Player *timeline.Player
}
