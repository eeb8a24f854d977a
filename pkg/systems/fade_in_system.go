package systems

import (
	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/ecs"
	"github.com/gonewx/diary/pkg/utils"
)

// FadeInSystem 卡片淡入动画
// 透明度 0→1，纵向偏移 OffsetY→0，使用三次方缓出
type FadeInSystem struct {
	entityManager *ecs.EntityManager
}

// NewFadeInSystem 创建淡入系统
func NewFadeInSystem(em *ecs.EntityManager) *FadeInSystem {
	return &FadeInSystem{entityManager: em}
}

// Update 推进所有淡入动画
func (s *FadeInSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FadeInComponent](s.entityManager) {
		fade, _ := ecs.GetComponent[*components.FadeInComponent](s.entityManager, id)
		if deltaTime > 0 {
			fade.Elapsed += deltaTime
		}

		progress := 1.0
		if fade.Duration > 0 && fade.Elapsed < fade.Duration {
			progress = fade.Elapsed / fade.Duration
		}

		eased := utils.EaseOutCubic(progress)
		fade.Opacity = eased
		fade.ShiftY = utils.Lerp(fade.OffsetY, 0, eased)
	}
}
