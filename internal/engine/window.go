package engine

import mgl "github.com/go-gl/mathgl/mgl32"

// colorRef packs an RGB colour into the 0x00BBGGRR layout Windows expects.
func colorRef(c mgl.Vec3) uint32 {
	channel := func(v float32) uint32 {
		return uint32(mgl.Clamp(v, 0, 1)*255 + 0.5)
	}
	return channel(c.Z())<<16 | channel(c.Y())<<8 | channel(c.X())
}
