// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Default camera values.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultMoveSpeed   float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0
)

// Below this length the cross product of front and world up no longer
// defines a right vector.
const degenerateEpsilon = 1e-6

var ErrDegenerateBasis = errors.New("camera front is parallel to world up")

// CameraLimits bounds the constrained pitch and the zoom (field of view).
type CameraLimits struct {
	PitchLimit float32 // pitch is kept in [-PitchLimit, PitchLimit] when constrained
	MinZoom    float32
	MaxZoom    float32
}

func DefaultCameraLimits() CameraLimits {
	return CameraLimits{
		PitchLimit: 89.0,
		MinZoom:    1.0,
		MaxZoom:    45.0,
	}
}

// EulerCamera is a first-person fly camera driven by yaw and pitch. The
// front/right/up basis is derived from the angles and recomputed every time
// they change, so the angles are only reachable through methods.
type EulerCamera struct {
	// HOT DATA - read every frame by the renderer
	position mgl32.Vec3 // Camera position in world space
	front    mgl32.Vec3 // Forward direction vector
	up       mgl32.Vec3 // Up direction vector
	right    mgl32.Vec3 // Right direction vector
	yaw      float32    // Degrees, rotation about world up
	pitch    float32    // Degrees, rotation about right
	zoom     float32    // Field of view in degrees

	// COLD DATA - configuration
	worldUp          mgl32.Vec3
	moveSpeed        float32 // Units per second
	mouseSensitivity float32 // Degrees per device unit
	limits           CameraLimits
	degenerate       bool
}

type CameraOption func(*EulerCamera)

func WithYawPitch(yaw, pitch float32) CameraOption {
	return func(c *EulerCamera) {
		c.yaw = yaw
		c.pitch = pitch
	}
}

func WithMoveSpeed(speed float32) CameraOption {
	return func(c *EulerCamera) {
		c.moveSpeed = speed
	}
}

func WithSensitivity(sensitivity float32) CameraOption {
	return func(c *EulerCamera) {
		c.mouseSensitivity = sensitivity
	}
}

func WithZoom(zoom float32) CameraOption {
	return func(c *EulerCamera) {
		c.zoom = zoom
	}
}

func WithLimits(limits CameraLimits) CameraOption {
	return func(c *EulerCamera) {
		c.limits = limits
	}
}

// NewEulerCamera creates a camera at position using up as the world up
// reference. Without options it looks down -Z.
func NewEulerCamera(position, up mgl32.Vec3, opts ...CameraOption) *EulerCamera {
	c := &EulerCamera{
		position:         position,
		worldUp:          up,
		front:            mgl32.Vec3{0, 0, -1},
		yaw:              DefaultYaw,
		pitch:            DefaultPitch,
		moveSpeed:        DefaultMoveSpeed,
		mouseSensitivity: DefaultSensitivity,
		zoom:             DefaultZoom,
		limits:           DefaultCameraLimits(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.zoom = mgl32.Clamp(c.zoom, c.limits.MinZoom, c.limits.MaxZoom)
	c.updateVectors()
	return c
}

// NewEulerCameraScalars is NewEulerCamera with the vectors spelled out.
func NewEulerCameraScalars(posX, posY, posZ, upX, upY, upZ float32, opts ...CameraOption) *EulerCamera {
	return NewEulerCamera(mgl32.Vec3{posX, posY, posZ}, mgl32.Vec3{upX, upY, upZ}, opts...)
}

func (c *EulerCamera) Position() mgl32.Vec3      { return c.position }
func (c *EulerCamera) Front() mgl32.Vec3         { return c.front }
func (c *EulerCamera) Right() mgl32.Vec3         { return c.right }
func (c *EulerCamera) Up() mgl32.Vec3            { return c.up }
func (c *EulerCamera) WorldUp() mgl32.Vec3       { return c.worldUp }
func (c *EulerCamera) Yaw() float32              { return c.yaw }
func (c *EulerCamera) Pitch() float32            { return c.pitch }
func (c *EulerCamera) Zoom() float32             { return c.zoom }
func (c *EulerCamera) MoveSpeed() float32        { return c.moveSpeed }
func (c *EulerCamera) Limits() CameraLimits      { return c.limits }
func (c *EulerCamera) MouseSensitivity() float32 { return c.mouseSensitivity }

func (c *EulerCamera) SetPosition(p mgl32.Vec3) {
	c.position = p
}

func (c *EulerCamera) SetMoveSpeed(speed float32) {
	c.moveSpeed = speed
}

func (c *EulerCamera) SetMouseSensitivity(sensitivity float32) {
	c.mouseSensitivity = sensitivity
}

// SetOrientation replaces yaw and pitch and rebuilds the basis.
func (c *EulerCamera) SetOrientation(yaw, pitch float32, constrainPitch bool) {
	c.yaw = yaw
	c.pitch = pitch
	if constrainPitch {
		c.clampPitch()
	}
	c.updateVectors()
}

// LookAt turns the camera towards target without moving it. The pitch is
// always constrained.
func (c *EulerCamera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.position)
	if dir.Len() < degenerateEpsilon {
		return
	}
	dir = dir.Normalize()
	yaw := mgl32.RadToDeg(float32(math.Atan2(float64(dir.Z()), float64(dir.X()))))
	pitch := mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(dir.Y(), -1, 1)))))
	c.SetOrientation(yaw, pitch, true)
}

// Degenerate reports whether the last basis update found front parallel to
// world up. Right is then carried over from the previous basis.
func (c *EulerCamera) Degenerate() bool {
	return c.degenerate
}

func (c *EulerCamera) Err() error {
	if c.degenerate {
		return ErrDegenerateBasis
	}
	return nil
}

// GetViewMatrix returns the look-at transform for the current position and basis.
func (c *EulerCamera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// GetProjectionMatrix builds a perspective projection from the current zoom.
// The camera does not keep the result.
func (c *EulerCamera) GetProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

func (c *EulerCamera) GetViewProjection(aspect, near, far float32) mgl32.Mat4 {
	return c.GetProjectionMatrix(aspect, near, far).Mul4(c.GetViewMatrix())
}

// ProcessKeyboard moves the camera along front or right by moveSpeed*deltaTime.
// deltaTime is expected to be finite and non-negative.
func (c *EulerCamera) ProcessKeyboard(direction Direction, deltaTime float32) {
	velocity := c.moveSpeed * deltaTime
	switch direction {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// ProcessMovement applies every held direction in one step. The result equals
// calling ProcessKeyboard once per direction in the set.
func (c *EulerCamera) ProcessMovement(dirs DirectionSet, deltaTime float32) {
	if dirs.Empty() {
		return
	}
	forward, right := dirs.Axes()
	velocity := c.moveSpeed * deltaTime
	offset := c.front.Mul(forward * velocity).Add(c.right.Mul(right * velocity))
	c.position = c.position.Add(offset)
}

// ProcessMouseMovement turns the camera by raw pointer offsets. With
// constrainPitch the pitch is clamped after the offset is applied. The basis
// is rebuilt even for a zero offset.
func (c *EulerCamera) ProcessMouseMovement(offsetX, offsetY float32, constrainPitch bool) {
	offsetX *= c.mouseSensitivity
	offsetY *= c.mouseSensitivity

	c.yaw += offsetX
	c.pitch += offsetY

	if constrainPitch {
		c.clampPitch()
	}
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view. It never moves the camera.
func (c *EulerCamera) ProcessMouseScroll(offsetY float32) {
	c.zoom = mgl32.Clamp(c.zoom-offsetY, c.limits.MinZoom, c.limits.MaxZoom)
}

func (c *EulerCamera) clampPitch() {
	c.pitch = mgl32.Clamp(c.pitch, -c.limits.PitchLimit, c.limits.PitchLimit)
}

func (c *EulerCamera) updateVectors() {
	yawRad := float64(mgl32.DegToRad(c.yaw))
	pitchRad := float64(mgl32.DegToRad(c.pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	c.front = front.Normalize()

	right := c.front.Cross(c.worldUp)
	if right.Len() < degenerateEpsilon {
		c.degenerate = true
		c.right = c.fallbackRight()
	} else {
		c.degenerate = false
		c.right = right.Normalize()
	}
	c.up = c.right.Cross(c.front).Normalize()
}

// fallbackRight keeps the previous right vector, projected off the new front.
// A camera built degenerate has no previous right and takes any perpendicular.
func (c *EulerCamera) fallbackRight() mgl32.Vec3 {
	r := c.right.Sub(c.front.Mul(c.right.Dot(c.front)))
	if r.Len() > degenerateEpsilon {
		return r.Normalize()
	}
	axis := mgl32.Vec3{1, 0, 0}
	if float32(math.Abs(float64(c.front.X()))) > 0.9 {
		axis = mgl32.Vec3{0, 0, 1}
	}
	return c.front.Cross(axis).Normalize()
}

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

type Frustum struct {
	Planes [6]Plane
}

// CalculateFrustum extracts the six clip planes of the camera's view volume.
func (c *EulerCamera) CalculateFrustum(aspect, near, far float32) Frustum {
	var frustum Frustum
	vp := c.GetViewProjection(aspect, near, far)

	// Left Plane
	frustum.Planes[0] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[0], vp[7] + vp[4], vp[11] + vp[8]},
		Distance: vp[15] + vp[12],
	}

	// Right Plane
	frustum.Planes[1] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[0], vp[7] - vp[4], vp[11] - vp[8]},
		Distance: vp[15] - vp[12],
	}

	// Bottom Plane
	frustum.Planes[2] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[1], vp[7] + vp[5], vp[11] + vp[9]},
		Distance: vp[15] + vp[13],
	}

	// Top Plane
	frustum.Planes[3] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[1], vp[7] - vp[5], vp[11] - vp[9]},
		Distance: vp[15] - vp[13],
	}

	// Near Plane
	frustum.Planes[4] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[2], vp[7] + vp[6], vp[11] + vp[10]},
		Distance: vp[15] + vp[14],
	}

	// Far Plane
	frustum.Planes[5] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[2], vp[7] - vp[6], vp[11] - vp[10]},
		Distance: vp[15] - vp[14],
	}

	for i := range frustum.Planes {
		length := frustum.Planes[i].Normal.Len()
		frustum.Planes[i].Normal = frustum.Planes[i].Normal.Mul(1.0 / length)
		frustum.Planes[i].Distance /= length
	}

	return frustum
}

func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false // Sphere is outside the frustum
		}
	}
	return true
}
