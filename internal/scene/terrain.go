package scene

import (
	"GopherFPS/internal/logger"
	"GopherFPS/internal/renderer"
	"image/color"

	mgl "github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Eye height above the ground when the scene starts.
const terrainEyeHeight float32 = 2.0

// TerrainScene is a Perlin-noise heightfield under a low sun.
type TerrainScene struct {
	host    Host
	opts    renderer.TerrainOptions
	terrain *renderer.Mesh
}

func NewTerrainScene(host Host, seed int64) *TerrainScene {
	opts := renderer.DefaultTerrainOptions()
	opts.Seed = seed
	return &TerrainScene{host: host, opts: opts}
}

func (s *TerrainScene) Start() {
	rend := s.host.GetRenderer()
	s.host.SetClearColor(mgl.Vec3{0.53, 0.72, 0.88})

	s.terrain = renderer.NewTerrainMesh(s.opts)
	ground, err := rend.CreateTextureFromImage(renderer.NoiseImage(256, s.opts.Seed,
		color.RGBA{46, 74, 30, 255}, color.RGBA{122, 150, 70, 255}))
	if err != nil {
		logger.Log.Error("Failed to create terrain texture", zap.Error(err))
	}
	s.terrain.Material = renderer.Material{DiffuseTexture: ground, Shininess: 8}
	if err := rend.AddMesh(s.terrain); err != nil {
		logger.Log.Error("Failed to add terrain", zap.Error(err))
		return
	}

	sun := renderer.NewDirectionalLight(mgl.Vec3{-0.4, -0.6, -0.3})
	sun.Ambient = mgl.Vec3{0.25, 0.25, 0.25}
	sun.Diffuse = mgl.Vec3{0.8, 0.75, 0.65}
	sun.Specular = mgl.Vec3{0.1, 0.1, 0.1}
	s.host.SetLighting(&renderer.Lighting{
		Directional: sun,
		Spot:        renderer.NewSpotLight(),
	})

	// Start at the southern edge looking across the terrain
	camera := s.host.GetCamera()
	z := s.opts.Size/2 - 5
	camera.SetPosition(mgl.Vec3{0, s.terrain.HeightAt(0, z, s.opts) + terrainEyeHeight, z})
	camera.LookAt(mgl.Vec3{0, 0, 0})

	logger.Log.Info("Terrain scene ready", zap.Int("vertices", s.terrain.VertexCount()), zap.Int64("seed", s.opts.Seed))
}

func (s *TerrainScene) Update(deltaTime float32) {}

func (s *TerrainScene) UpdateFixed(step float32) {}

func (s *TerrainScene) Terrain() *renderer.Mesh {
	return s.terrain
}
