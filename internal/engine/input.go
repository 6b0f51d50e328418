package engine

import (
	"GopherFPS/internal/renderer"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var movementKeys = []struct {
	key       glfw.Key
	direction renderer.Direction
}{
	{glfw.KeyW, renderer.Forward},
	{glfw.KeyUp, renderer.Forward},
	{glfw.KeyS, renderer.Backward},
	{glfw.KeyDown, renderer.Backward},
	{glfw.KeyA, renderer.Left},
	{glfw.KeyLeft, renderer.Left},
	{glfw.KeyD, renderer.Right},
	{glfw.KeyRight, renderer.Right},
}

// heldDirections polls every movement key once and returns the directions
// held this frame.
func heldDirections(pressed func(glfw.Key) bool) renderer.DirectionSet {
	var dirs renderer.DirectionSet
	for _, mk := range movementKeys {
		if pressed(mk.key) {
			dirs = dirs.Add(mk.direction)
		}
	}
	return dirs
}

// mouseTracker turns absolute cursor positions into per-event offsets.
type mouseTracker struct {
	lastX, lastY float64
	firstMouse   bool
}

func newMouseTracker() mouseTracker {
	return mouseTracker{firstMouse: true}
}

// offset returns the motion since the previous position. The first call
// after a reset only records the position, so entering the window does not
// jerk the view. Y is reversed since screen coordinates grow downwards.
func (m *mouseTracker) offset(x, y float64) (dx, dy float32, ok bool) {
	if m.firstMouse {
		m.lastX, m.lastY = x, y
		m.firstMouse = false
		return 0, 0, false
	}
	dx = float32(x - m.lastX)
	dy = float32(m.lastY - y)
	m.lastX, m.lastY = x, y
	return dx, dy, true
}

func (m *mouseTracker) reset() {
	m.firstMouse = true
}

type inputKind int

const (
	mouseMoveInput inputKind = iota
	scrollInput
	tuningInput // x is the move speed, y the mouse sensitivity
	clickInput  // x, y in framebuffer pixels
)

type inputEvent struct {
	kind inputKind
	x, y float32
}

// inputQueue buffers pointer events between frames. Events are applied one
// by one in arrival order so pitch is clamped after every event exactly as
// if it had been applied from the callback.
type inputQueue struct {
	mu     sync.Mutex
	events []inputEvent
	spare  []inputEvent
}

func (q *inputQueue) push(e inputEvent) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// drain hands every queued event to fn and empties the queue. fn runs
// without the lock held.
func (q *inputQueue) drain(fn func(inputEvent)) int {
	q.mu.Lock()
	events := q.events
	q.events = q.spare[:0]
	q.mu.Unlock()

	for _, e := range events {
		fn(e)
	}

	q.mu.Lock()
	q.spare = events[:0]
	q.mu.Unlock()
	return len(events)
}

func applyInput(camera *renderer.EulerCamera, e inputEvent) {
	switch e.kind {
	case mouseMoveInput:
		camera.ProcessMouseMovement(e.x, e.y, true)
	case scrollInput:
		camera.ProcessMouseScroll(e.y)
	case tuningInput:
		camera.SetMoveSpeed(e.x)
		camera.SetMouseSensitivity(e.y)
	}
}

// frameTimer measures wall-clock seconds between frames.
type frameTimer struct {
	last    float64
	started bool
	elapsed float64
}

// tick returns the seconds since the previous tick, 0 on the first one.
func (t *frameTimer) tick(now float64) float32 {
	if !t.started {
		t.last = now
		t.started = true
		return 0
	}
	dt := now - t.last
	t.last = now
	if dt < 0 {
		dt = 0
	}
	t.elapsed += dt
	return float32(dt)
}
