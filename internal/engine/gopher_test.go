package engine

import (
	"GopherFPS/internal/config"
	"GopherFPS/internal/renderer"
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
)

func TestNewGopher(t *testing.T) {
	cfg := config.Default()
	gopher := NewGopher(cfg)

	if gopher.Width != cfg.Window.Width || gopher.Height != cfg.Window.Height {
		t.Errorf("expected %dx%d, got %dx%d", cfg.Window.Width, cfg.Window.Height, gopher.Width, gopher.Height)
	}
	if gopher.GetCamera() == nil || gopher.GetRenderer() == nil {
		t.Fatal("camera and renderer should exist before Render")
	}
	if gopher.GetWindow() != nil {
		t.Error("window should not exist before Render")
	}
	if !gopher.EnableCameraInput {
		t.Error("camera input should be enabled by default")
	}
}

func TestNewCameraFromConfig(t *testing.T) {
	cfg := config.Default().Camera
	cfg.Position = [3]float32{1, 2, 3}
	cfg.Yaw = 0
	cfg.MoveSpeed = 4
	cfg.PitchLimit = 30
	cfg.MinZoom = 5
	cfg.MaxZoom = 20
	cfg.Zoom = 20

	cam := NewCamera(cfg)

	if cam.Position() != (mgl.Vec3{1, 2, 3}) {
		t.Errorf("unexpected position %v", cam.Position())
	}
	if cam.Front().Sub(mgl.Vec3{1, 0, 0}).Len() > 1e-5 {
		t.Errorf("yaw 0 should look down +X, got %v", cam.Front())
	}
	if cam.MoveSpeed() != 4 {
		t.Errorf("expected move speed 4, got %v", cam.MoveSpeed())
	}

	cam.ProcessMouseMovement(0, 1000, true)
	if cam.Pitch() != 30 {
		t.Errorf("configured pitch limit should apply, got %v", cam.Pitch())
	}
	cam.ProcessMouseScroll(100)
	if cam.Zoom() != 5 {
		t.Errorf("configured min zoom should apply, got %v", cam.Zoom())
	}
}

func TestGopherSetters(t *testing.T) {
	gopher := NewGopher(config.Default())

	gopher.SetClearColor(mgl.Vec3{0.2, 0.3, 0.3})
	if gopher.ClearColor != (mgl.Vec3{0.2, 0.3, 0.3}) {
		t.Errorf("unexpected clear colour %v", gopher.ClearColor)
	}

	called := false
	gopher.SetOnRenderCallback(func(float32) { called = true })
	gopher.onRenderCallback(0)
	if !called {
		t.Error("render callback should be stored")
	}
}

func TestApplyQueuedInputRespectsEnableFlag(t *testing.T) {
	gopher := NewGopher(config.Default())
	gopher.EnableCameraInput = false
	gopher.events.push(inputEvent{kind: scrollInput, y: 10})

	gopher.applyQueuedInput()

	if gopher.GetCamera().Zoom() != 45 {
		t.Error("disabled camera input should drop queued events")
	}
	if gopher.events.drain(func(inputEvent) {}) != 0 {
		t.Error("dropped events should still leave the queue")
	}
}

func TestQueueConfigAppliesTuning(t *testing.T) {
	gopher := NewGopher(config.Default())
	gopher.EnableCameraInput = false

	cfg := config.Default()
	cfg.Camera.MoveSpeed = 6
	cfg.Camera.MouseSensitivity = 0.25
	gopher.QueueConfig(cfg)

	if gopher.GetCamera().MoveSpeed() != 2.5 {
		t.Error("tuning should wait for the next frame")
	}
	gopher.applyQueuedInput()

	cam := gopher.GetCamera()
	if cam.MoveSpeed() != 6 || cam.MouseSensitivity() != 0.25 {
		t.Errorf("expected speed 6 and sensitivity 0.25, got %v and %v", cam.MoveSpeed(), cam.MouseSensitivity())
	}
}

func TestProcessInputTurnsBeforeMoving(t *testing.T) {
	gopher := NewGopher(config.Default())
	// Default sensitivity 0.1: 900 units turn yaw from -90 to 0, facing +X
	gopher.events.push(inputEvent{kind: mouseMoveInput, x: 900})

	gopher.processInput(renderer.NewDirectionSet(renderer.Forward), 1)

	cam := gopher.GetCamera()
	want := mgl.Vec3{2.5, 0, 3}
	if cam.Position().Sub(want).Len() > 1e-4 {
		t.Errorf("forward should follow the turned front, got %v want %v", cam.Position(), want)
	}
}

func TestProcessInputDisabledKeepsPosition(t *testing.T) {
	gopher := NewGopher(config.Default())
	gopher.EnableCameraInput = false

	gopher.processInput(renderer.NewDirectionSet(renderer.Forward), 1)

	if gopher.GetCamera().Position() != (mgl.Vec3{0, 0, 3}) {
		t.Errorf("disabled input should not move the camera, got %v", gopher.GetCamera().Position())
	}
}

func TestClickDeliversRayUnderCursor(t *testing.T) {
	gopher := NewGopher(config.Default())
	gopher.EnableCameraInput = false

	var rays []renderer.Ray
	gopher.SetOnClick(func(ray renderer.Ray) { rays = append(rays, ray) })
	gopher.events.push(inputEvent{kind: clickInput, x: float32(gopher.Width) / 2, y: float32(gopher.Height) / 2})
	gopher.events.push(inputEvent{kind: clickInput, x: 0, y: float32(gopher.Height) / 2})

	gopher.applyQueuedInput()

	if len(rays) != 2 {
		t.Fatalf("expected 2 clicks, got %d", len(rays))
	}
	cam := gopher.GetCamera()
	if rays[0].Direction.Sub(cam.Front()).Len() > 1e-4 {
		t.Errorf("centre click should follow front %v, got %v", cam.Front(), rays[0].Direction)
	}
	if rays[1].Direction.Dot(cam.Right()) >= 0 {
		t.Errorf("left edge click should point left, got %v", rays[1].Direction)
	}
}

func TestClickWithoutHandlerIsDropped(t *testing.T) {
	gopher := NewGopher(config.Default())
	gopher.events.push(inputEvent{kind: clickInput, x: 10, y: 10})
	gopher.applyQueuedInput()
	if gopher.events.drain(func(inputEvent) {}) != 0 {
		t.Error("click should leave the queue")
	}
}
