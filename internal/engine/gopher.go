package engine

import (
	behaviour "GopherFPS/internal/behaviour"
	"GopherFPS/internal/config"
	"GopherFPS/internal/logger"
	"GopherFPS/internal/renderer"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Gopher is one application session: the window, the renderer, the camera
// and all per-frame input and timing state.
type Gopher struct {
	Width             int32
	Height            int32
	Config            config.Config
	Lighting          *renderer.Lighting
	Behaviours        *behaviour.BehaviourManager
	EnableCameraInput bool // Control whether camera processes keyboard/mouse input
	ClearColor        mgl.Vec3

	camera           *renderer.EulerCamera
	rendererAPI      renderer.Render
	window           *glfw.Window
	mouse            mouseTracker
	timer            frameTimer
	events           inputQueue
	wasDegenerate    bool
	onRenderCallback func(deltaTime float32) // Optional callback after the scene is rendered
	onClick          func(ray renderer.Ray)
}

func NewGopher(cfg config.Config) *Gopher {
	logger.Log.Info("GopherFPS initializing...", zap.String("scene", cfg.Scene))
	renderer.Debug = cfg.Debug

	return &Gopher{
		Width:             cfg.Window.Width,
		Height:            cfg.Window.Height,
		Config:            cfg,
		Behaviours:        behaviour.NewBehaviourManager(),
		EnableCameraInput: true,
		ClearColor:        mgl.Vec3{0.1, 0.1, 0.1},
		camera:            NewCamera(cfg.Camera),
		rendererAPI:       renderer.NewOpenGLRenderer(cfg.Camera.Near, cfg.Camera.Far),
		mouse:             newMouseTracker(),
	}
}

// NewCamera builds the session camera from its configuration.
func NewCamera(cfg config.CameraConfig) *renderer.EulerCamera {
	return renderer.NewEulerCamera(
		mgl.Vec3(cfg.Position),
		mgl.Vec3(cfg.WorldUp),
		renderer.WithYawPitch(cfg.Yaw, cfg.Pitch),
		renderer.WithMoveSpeed(cfg.MoveSpeed),
		renderer.WithSensitivity(cfg.MouseSensitivity),
		renderer.WithZoom(cfg.Zoom),
		renderer.WithLimits(renderer.CameraLimits{
			PitchLimit: cfg.PitchLimit,
			MinZoom:    cfg.MinZoom,
			MaxZoom:    cfg.MaxZoom,
		}),
	)
}

// Render opens the window at (x, y), runs the render loop until the window
// closes and releases everything on the way out.
func (gopher *Gopher) Render(x, y int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "initializing glfw")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Config.Window.Title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "creating glfw window")
	}
	defer window.Destroy()
	gopher.window = window
	window.MakeContextCurrent()
	if x >= 0 && y >= 0 {
		window.SetPos(x, y)
	}

	// The framebuffer can be larger than the window on high-DPI screens
	fbWidth, fbHeight := window.GetFramebufferSize()
	if err := gopher.rendererAPI.Init(int32(fbWidth), int32(fbHeight)); err != nil {
		logger.Log.Error("Could not initialize renderer", zap.Error(err))
		return err
	}
	defer gopher.rendererAPI.Cleanup()
	gopher.SetClearColor(gopher.ClearColor)

	if gopher.Config.Window.Capture {
		window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	window.SetFramebufferSizeCallback(gopher.framebufferSizeCallback)
	window.SetCursorPosCallback(gopher.mouseCallback)
	window.SetScrollCallback(gopher.scrollCallback)
	window.SetMouseButtonCallback(gopher.mouseButtonCallback)
	window.SetKeyCallback(gopher.keyCallback)

	gopher.RenderLoop()
	return nil
}

func (gopher *Gopher) RenderLoop() {
	for !gopher.window.ShouldClose() {
		deltaTime := gopher.timer.tick(glfw.GetTime())

		var held renderer.DirectionSet
		if gopher.EnableCameraInput {
			held = heldDirections(gopher.keyPressed)
		}
		gopher.processInput(held, deltaTime)

		gopher.Behaviours.UpdateAll(deltaTime)
		gopher.rendererAPI.Render(gopher.camera, gopher.Lighting)

		if gopher.onRenderCallback != nil {
			gopher.onRenderCallback(deltaTime)
		}

		gopher.window.SwapBuffers()
		glfw.PollEvents()
	}
	logger.Log.Info("Render loop finished", zap.Float64("seconds", gopher.timer.elapsed))
}

// processInput turns the camera with the events polled since the last frame,
// then moves along the updated front.
func (gopher *Gopher) processInput(held renderer.DirectionSet, deltaTime float32) {
	gopher.applyQueuedInput()
	if gopher.EnableCameraInput {
		gopher.camera.ProcessMovement(held, deltaTime)
	}
}

// applyQueuedInput feeds the pointer events gathered since the last frame
// to the camera in arrival order.
func (gopher *Gopher) applyQueuedInput() {
	gopher.events.drain(func(e inputEvent) {
		switch {
		case e.kind == clickInput:
			gopher.handleClick(e.x, e.y)
		case gopher.EnableCameraInput || e.kind == tuningInput:
			applyInput(gopher.camera, e)
		}
	})

	if degenerate := gopher.camera.Degenerate(); degenerate != gopher.wasDegenerate {
		gopher.wasDegenerate = degenerate
		if degenerate {
			logger.Log.Warn("Camera basis is degenerate", zap.Error(gopher.camera.Err()),
				zap.Float32("pitch", gopher.camera.Pitch()))
		}
	}
}

func (gopher *Gopher) handleClick(x, y float32) {
	if gopher.onClick == nil {
		return
	}
	cam := gopher.Config.Camera
	gopher.onClick(renderer.ScreenToRay(gopher.camera, x, y, gopher.Width, gopher.Height, cam.Near, cam.Far))
}

// SetOnClick registers the handler for left clicks on a visible cursor. It
// receives the world space ray under the cursor.
func (gopher *Gopher) SetOnClick(handler func(ray renderer.Ray)) {
	gopher.onClick = handler
}

func (gopher *Gopher) keyPressed(key glfw.Key) bool {
	return gopher.window.GetKey(key) == glfw.Press
}

// SetOnRenderCallback sets a callback that will be called each frame after the 3D scene is rendered
func (gopher *Gopher) SetOnRenderCallback(callback func(deltaTime float32)) {
	gopher.onRenderCallback = callback
}

// SetClearColor sets the background colour and matches the title bar to it
// where the platform allows.
func (gopher *Gopher) SetClearColor(c mgl.Vec3) {
	gopher.ClearColor = c
	gopher.rendererAPI.SetClearColor(c)
	if gopher.window != nil {
		styleWindow(gopher.window, c)
	}
}

// QueueConfig hands a reloaded config to the render loop, which applies the
// camera tuning at the start of the next frame. Safe from any goroutine.
func (gopher *Gopher) QueueConfig(cfg config.Config) {
	gopher.events.push(inputEvent{kind: tuningInput, x: cfg.Camera.MoveSpeed, y: cfg.Camera.MouseSensitivity})
}

func (gopher *Gopher) SetLighting(lighting *renderer.Lighting) {
	gopher.Lighting = lighting
}

func (gopher *Gopher) AddBehaviour(b behaviour.PlayerBehaviour) {
	gopher.Behaviours.Add(b)
}

// ElapsedTime is the number of seconds the render loop has been running.
func (gopher *Gopher) ElapsedTime() float64 {
	return gopher.timer.elapsed
}

func (gopher *Gopher) GetCamera() *renderer.EulerCamera {
	return gopher.camera
}

// GetWindow returns the GLFW window, nil before Render
func (gopher *Gopher) GetWindow() *glfw.Window {
	return gopher.window
}

func (gopher *Gopher) GetRenderer() renderer.Render {
	return gopher.rendererAPI
}

func (gopher *Gopher) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		// Minimized
		return
	}
	gopher.Width, gopher.Height = int32(width), int32(height)
	gopher.rendererAPI.UpdateViewport(gopher.Width, gopher.Height)
}

func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	// Without a captured cursor the view only turns while the right button is held
	looking := gopher.Config.Window.Capture ||
		(w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press)
	if !looking {
		gopher.mouse.reset()
		return
	}

	if dx, dy, ok := gopher.mouse.offset(xpos, ypos); ok {
		gopher.events.push(inputEvent{kind: mouseMoveInput, x: dx, y: dy})
	}
}

// mouseButtonCallback queues left clicks while the cursor is visible.
// Cursor positions are in screen coordinates and get scaled to the
// framebuffer the renderer draws into.
func (gopher *Gopher) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if gopher.Config.Window.Capture || button != glfw.MouseButtonLeft || action != glfw.Press {
		return
	}
	x, y := w.GetCursorPos()
	winWidth, winHeight := w.GetSize()
	fbWidth, fbHeight := w.GetFramebufferSize()
	if winWidth > 0 && winHeight > 0 {
		x *= float64(fbWidth) / float64(winWidth)
		y *= float64(fbHeight) / float64(winHeight)
	}
	gopher.events.push(inputEvent{kind: clickInput, x: float32(x), y: float32(y)})
}

func (gopher *Gopher) scrollCallback(_ *glfw.Window, _, yoff float64) {
	gopher.events.push(inputEvent{kind: scrollInput, y: float32(yoff)})
}

func (gopher *Gopher) keyCallback(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}
