package renderer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

var FrustumCullingEnabled bool = true
var Debug bool = false

// MaxPointLights must match NR_POINT_LIGHTS in the lighting shader.
const MaxPointLights = 4

type LightKind int

const (
	DirectionalLight LightKind = iota
	PointLight
	SpotLight
)

func (k LightKind) String() string {
	switch k {
	case DirectionalLight:
		return "directional"
	case PointLight:
		return "point"
	case SpotLight:
		return "spot"
	default:
		return "unknown"
	}
}

type Light struct {
	Kind      LightKind
	Position  mgl32.Vec3 // point and spot
	Direction mgl32.Vec3 // directional and spot
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3

	// Attenuation factors, point and spot only
	Constant  float32
	Linear    float32
	Quadratic float32

	// Spot cone in degrees
	CutOff      float32
	OuterCutOff float32

	// FollowCamera places a spot light at the camera, pointing along its front.
	FollowCamera bool
}

// Lighting is everything the lighting shader needs besides the camera.
type Lighting struct {
	Directional *Light
	Points      []*Light
	Spot        *Light
	ShowLamps   bool // draw a small unlit cube at every point light
}

type Render interface {
	Init(width, height int32) error
	Render(camera *EulerCamera, lighting *Lighting)
	AddMesh(mesh *Mesh) error
	RemoveMesh(mesh *Mesh)
	CreateTextureFromImage(img image.Image) (uint32, error)
	UpdateViewport(width, height int32)
	SetClearColor(color mgl32.Vec3)
	Cleanup()
}

func NewDirectionalLight(direction mgl32.Vec3) *Light {
	return &Light{
		Kind:      DirectionalLight,
		Direction: direction.Normalize(),
		Ambient:   mgl32.Vec3{0.05, 0.05, 0.05},
		Diffuse:   mgl32.Vec3{0.4, 0.4, 0.4},
		Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
	}
}

// NewPointLight uses attenuation factors for a range of roughly 50 units.
func NewPointLight(position, color mgl32.Vec3) *Light {
	return &Light{
		Kind:      PointLight,
		Position:  position,
		Ambient:   color.Mul(0.05),
		Diffuse:   color.Mul(0.8),
		Specular:  color,
		Constant:  1.0,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// NewSpotLight returns a flashlight that follows the camera.
func NewSpotLight() *Light {
	return &Light{
		Kind:         SpotLight,
		Direction:    mgl32.Vec3{0, 0, -1},
		Diffuse:      mgl32.Vec3{1, 1, 1},
		Specular:     mgl32.Vec3{1, 1, 1},
		Constant:     1.0,
		Linear:       0.09,
		Quadratic:    0.032,
		CutOff:       12.5,
		OuterCutOff:  15.0,
		FollowCamera: true,
	}
}

// DefaultPointLightPositions are the four lamps placed around the cube field.
func DefaultPointLightPositions() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{0.7, 0.2, 2.0},
		{2.3, -3.3, -4.0},
		{-4.0, 2.0, -12.0},
		{0.0, 0.0, -3.0},
	}
}

// attachToCamera moves a camera-following light onto the camera.
func (l *Light) attachToCamera(camera *EulerCamera) {
	if !l.FollowCamera {
		return
	}
	l.Position = camera.Position()
	l.Direction = camera.Front()
}
