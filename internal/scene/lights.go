package scene

import (
	"GopherFPS/internal/logger"
	"GopherFPS/internal/renderer"
	"image/color"
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Degrees per second each cube turns.
const cubeSpinRate float32 = 20.0

// Scale of the cube picked with the mouse.
const selectedScale float32 = 1.25

var cubePositions = []mgl.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

var pointLightColors = []mgl.Vec3{
	{1.0, 0.6, 0.0},
	{1.0, 0.0, 0.0},
	{1.0, 1.0, 0.0},
	{0.2, 0.2, 1.0},
}

var cubeSpinAxis = mgl.Vec3{1.0, 0.3, 0.5}

// LightsScene is a field of spinning textured cubes under every kind of light
// the renderer supports.
type LightsScene struct {
	host     Host
	seed     int64
	cubes    []*renderer.Mesh
	lighting *renderer.Lighting
	elapsed  float32
	orbit    float32 // radians, first point light
	orbitAt  mgl.Vec3
	target   int // cube under the crosshair, -1 for none
	selected int // cube picked with the mouse, -1 for none
}

func NewLightsScene(host Host, seed int64) *LightsScene {
	return &LightsScene{host: host, seed: seed, target: -1, selected: -1}
}

func (s *LightsScene) Start() {
	rend := s.host.GetRenderer()
	s.host.SetClearColor(mgl.Vec3{0.1, 0.1, 0.1})

	diffuse, err := rend.CreateTextureFromImage(renderer.NoiseImage(256, s.seed,
		color.RGBA{92, 58, 28, 255}, color.RGBA{196, 140, 82, 255}))
	if err != nil {
		logger.Log.Error("Failed to create cube texture", zap.Error(err))
	}
	specular, err := rend.CreateTextureFromImage(renderer.CheckerImage(256, 8,
		color.RGBA{200, 200, 200, 255}, color.RGBA{30, 30, 30, 255}))
	if err != nil {
		logger.Log.Error("Failed to create specular map", zap.Error(err))
	}

	for i, pos := range cubePositions {
		cube := renderer.NewCubeMesh()
		cube.SetPosition(pos)
		cube.SetRotation(cubeSpinAxis, cubeAngle(i, 0))
		cube.Material = renderer.Material{DiffuseTexture: diffuse, SpecularTexture: specular, Shininess: 32}
		if err := rend.AddMesh(cube); err != nil {
			logger.Log.Error("Failed to add cube", zap.Int("index", i), zap.Error(err))
			continue
		}
		s.cubes = append(s.cubes, cube)
	}

	s.lighting = &renderer.Lighting{
		Directional: renderer.NewDirectionalLight(mgl.Vec3{-0.2, -1.0, -0.3}),
		Spot:        renderer.NewSpotLight(),
		ShowLamps:   true,
	}
	for i, pos := range renderer.DefaultPointLightPositions() {
		s.lighting.Points = append(s.lighting.Points, renderer.NewPointLight(pos, pointLightColors[i%len(pointLightColors)]))
	}
	s.orbitAt = s.lighting.Points[0].Position
	s.host.SetLighting(s.lighting)
	s.host.SetOnClick(s.Select)

	logger.Log.Info("Lights scene ready", zap.Int("cubes", len(s.cubes)), zap.Int("pointLights", len(s.lighting.Points)))
}

func (s *LightsScene) Update(deltaTime float32) {
	s.elapsed += deltaTime
	for i, cube := range s.cubes {
		cube.SetRotation(cubeSpinAxis, cubeAngle(i, s.elapsed))
	}
	s.updateTarget()
}

func (s *LightsScene) updateTarget() {
	picked, dist := renderer.PickMesh(renderer.CameraRay(s.host.GetCamera()), s.cubes)
	target := s.indexOf(picked)
	if target != s.target {
		s.target = target
		if target >= 0 {
			logger.Log.Debug("Looking at cube", zap.Int("index", target), zap.Float32("distance", dist))
		}
	}
}

// Select enlarges the cube hit by ray and restores the previous pick.
// Clicking empty space clears the selection.
func (s *LightsScene) Select(ray renderer.Ray) {
	picked, _ := renderer.PickMesh(ray, s.cubes)
	if s.selected >= 0 {
		s.cubes[s.selected].SetScale(mgl.Vec3{1, 1, 1})
	}
	s.selected = s.indexOf(picked)
	if s.selected >= 0 {
		s.cubes[s.selected].SetScale(mgl.Vec3{selectedScale, selectedScale, selectedScale})
		logger.Log.Info("Cube selected", zap.Int("index", s.selected))
	}
}

// Selected is the index of the cube picked with the mouse, or -1.
func (s *LightsScene) Selected() int {
	return s.selected
}

func (s *LightsScene) indexOf(mesh *renderer.Mesh) int {
	for i, cube := range s.cubes {
		if cube == mesh {
			return i
		}
	}
	return -1
}

// Target is the index of the cube under the crosshair, or -1.
func (s *LightsScene) Target() int {
	return s.target
}

// UpdateFixed swings the first point light on a small circle around its
// starting position.
func (s *LightsScene) UpdateFixed(step float32) {
	if s.lighting == nil || len(s.lighting.Points) == 0 {
		return
	}
	s.orbit += step
	offset := mgl.Vec3{
		float32(math.Cos(float64(s.orbit))) * 1.5,
		0,
		float32(math.Sin(float64(s.orbit))) * 1.5,
	}
	s.lighting.Points[0].Position = s.orbitAt.Add(offset)
}

func (s *LightsScene) Cubes() []*renderer.Mesh {
	return s.cubes
}

func cubeAngle(index int, elapsed float32) float32 {
	return 20.0*float32(index) + elapsed*cubeSpinRate
}
