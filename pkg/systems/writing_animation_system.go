package systems

import (
	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/ecs"
	"github.com/gonewx/diary/pkg/writing"
)

// WritingAnimationSystem 推进铅笔书写动画
// 每帧推进时间轴，把 top/left/rotate 的当前值写回 PencilComponent
type WritingAnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewWritingAnimationSystem 创建书写动画系统
func NewWritingAnimationSystem(em *ecs.EntityManager) *WritingAnimationSystem {
	return &WritingAnimationSystem{entityManager: em}
}

// Update 推进所有书写动画
// 播放结束的动画由 Player.OnComplete 处理，这里不删除实体
func (s *WritingAnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.WritingAnimationComponent, *components.PencilComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.WritingAnimationComponent](s.entityManager, id)
		pencil, _ := ecs.GetComponent[*components.PencilComponent](s.entityManager, id)
		if anim.Player == nil || anim.Player.Stopped() {
			continue
		}

		anim.Player.Advance(deltaTime)

		values := anim.Player.Values()
		pencil.Top = values[writing.TrackTop]
		pencil.LeftPercent = values[writing.TrackLeft]
		pencil.Rotation = values[writing.TrackRotate]
	}
}
