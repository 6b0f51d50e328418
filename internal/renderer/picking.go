package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line; Direction is unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// CameraRay is the ray through the centre of the screen.
func CameraRay(camera *EulerCamera) Ray {
	return Ray{Origin: camera.Position(), Direction: camera.Front()}
}

// ScreenToRay unprojects a framebuffer position (origin top-left) into a world
// space ray leaving the camera. near and far must match the projection used
// for drawing.
func ScreenToRay(camera *EulerCamera, screenX, screenY float32, width, height int32, near, far float32) Ray {
	if width <= 0 || height <= 0 {
		return CameraRay(camera)
	}
	ndcX := 2.0*screenX/float32(width) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(height)

	projection := camera.GetProjectionMatrix(float32(width)/float32(height), near, far)
	eye := projection.Inv().Mul4x1(mgl32.Vec4{ndcX, ndcY, -1.0, 1.0})
	eye = mgl32.Vec4{eye.X(), eye.Y(), -1.0, 0.0}

	world := camera.GetViewMatrix().Inv().Mul4x1(eye).Vec3()
	if world.Len() == 0 {
		return CameraRay(camera)
	}
	return Ray{Origin: camera.Position(), Direction: world.Normalize()}
}

// RayIntersectSphere returns the distance to the nearest hit in front of the
// ray origin.
func RayIntersectSphere(ray Ray, center mgl32.Vec3, radius float32) (bool, float32) {
	oc := ray.Origin.Sub(center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return false, 0
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	switch {
	case t1 > 0:
		return true, t1
	case t2 > 0:
		// Origin inside the sphere
		return true, t2
	}
	return false, 0
}

// PickMesh returns the closest mesh whose world bounding sphere the ray hits,
// or nil.
func PickMesh(ray Ray, meshes []*Mesh) (*Mesh, float32) {
	var (
		picked  *Mesh
		nearest float32
	)
	for _, mesh := range meshes {
		mesh.UpdateModelMatrix()
		center, radius := mesh.WorldBoundingSphere()
		hit, t := RayIntersectSphere(ray, center, radius)
		if hit && (picked == nil || t < nearest) {
			picked, nearest = mesh, t
		}
	}
	return picked, nearest
}
