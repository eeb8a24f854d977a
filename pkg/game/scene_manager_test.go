package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	tornDown     int
	saved        int
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Teardown() {
	m.tornDown++
}

func (m *MockScene) SaveOnExit() bool {
	m.saved++
	return true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo changes the active scene
// and tears down the previous one.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first) // 切换到同一场景不销毁
	if first.tornDown != 0 {
		t.Errorf("re-selecting the active scene should not tear it down")
	}

	sm.SwitchTo(second)
	if sm.GetCurrentScene() != second {
		t.Error("SwitchTo did not set the current scene correctly")
	}
	if first.tornDown != 1 {
		t.Errorf("previous scene Teardown calls = %d, want 1", first.tornDown)
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(0.016)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %f", mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies Update and Draw do nothing without a scene.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Shutdown()
}

// TestSceneManagerShutdown verifies that Shutdown saves and tears down once.
func TestSceneManagerShutdown(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Shutdown()
	sm.Shutdown()

	if mockScene.saved != 1 || mockScene.tornDown != 1 {
		t.Errorf("saved=%d tornDown=%d, want 1/1", mockScene.saved, mockScene.tornDown)
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Shutdown should clear the current scene")
	}
}
