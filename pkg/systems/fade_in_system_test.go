package systems

import (
	"math"
	"testing"

	"github.com/gonewx/diary/pkg/components"
	"github.com/gonewx/diary/pkg/ecs"
)

func TestFadeInSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	fade := &components.FadeInComponent{Duration: 0.5, OffsetY: -50}
	em.AddComponent(id, fade)
	s := NewFadeInSystem(em)

	s.Update(0)
	if fade.Opacity != 0 || fade.ShiftY != -50 {
		t.Fatalf("start: opacity=%v shift=%v", fade.Opacity, fade.ShiftY)
	}

	s.Update(0.25)
	if fade.Opacity <= 0.5 || fade.Opacity >= 1 {
		t.Errorf("halfway opacity = %v, want ease-out value in (0.5,1)", fade.Opacity)
	}
	if math.Abs(fade.ShiftY+50*(1-fade.Opacity)) > 1e-9 {
		t.Errorf("shift %v does not track opacity %v", fade.ShiftY, fade.Opacity)
	}

	s.Update(1)
	if fade.Opacity != 1 || fade.ShiftY != 0 {
		t.Errorf("end: opacity=%v shift=%v", fade.Opacity, fade.ShiftY)
	}
}

func TestFadeInSystem_ZeroDuration(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	fade := &components.FadeInComponent{OffsetY: -50}
	em.AddComponent(id, fade)

	NewFadeInSystem(em).Update(0)

	if fade.Opacity != 1 || fade.ShiftY != 0 {
		t.Errorf("opacity=%v shift=%v, want fully shown", fade.Opacity, fade.ShiftY)
	}
}
