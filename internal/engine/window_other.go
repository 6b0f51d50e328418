//go:build !windows

package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	mgl "github.com/go-gl/mathgl/mgl32"
)

// styleWindow is a no-op outside Windows; other platforms draw their own
// decorations.
func styleWindow(_ *glfw.Window, _ mgl.Vec3) {}
