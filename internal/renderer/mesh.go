package renderer

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the interleaved layout: position(3) normal(3) uv(2).
const FloatsPerVertex = 8

type Material struct {
	DiffuseTexture  uint32
	SpecularTexture uint32
	Shininess       float32
}

var DefaultMaterial = Material{Shininess: 32.0}

type Mesh struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix   mgl32.Mat4
	Position      mgl32.Vec3
	Scale         mgl32.Vec3
	RotationAxis  mgl32.Vec3
	RotationAngle float32 // Degrees about RotationAxis
	Material      Material
	VAO           uint32
	VBO           uint32
	EBO           uint32
	IsDirty       bool

	// COLD DATA
	Name                 string
	Vertices             []float32
	Indices              []uint32   // empty means draw arrays
	BoundingSphereCenter mgl32.Vec3 // model space
	BoundingSphereRadius float32    // model space
}

func newMesh(name string, vertices []float32, indices []uint32) *Mesh {
	m := &Mesh{
		Name:         name,
		Vertices:     vertices,
		Indices:      indices,
		Scale:        mgl32.Vec3{1, 1, 1},
		RotationAxis: mgl32.Vec3{0, 1, 0},
		Material:     DefaultMaterial,
		IsDirty:      true,
	}
	m.CalculateBoundingSphere()
	m.calculateModelMatrix()
	return m
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

func (m *Mesh) SetPosition(p mgl32.Vec3) {
	m.Position = p
	m.IsDirty = true
}

func (m *Mesh) SetScale(s mgl32.Vec3) {
	m.Scale = s
	m.IsDirty = true
}

func (m *Mesh) SetRotation(axis mgl32.Vec3, degrees float32) {
	m.RotationAxis = axis
	m.RotationAngle = degrees
	m.IsDirty = true
}

// UpdateModelMatrix recomputes the model matrix if the transform changed.
func (m *Mesh) UpdateModelMatrix() {
	if m.IsDirty {
		m.calculateModelMatrix()
	}
}

func (m *Mesh) calculateModelMatrix() {
	translation := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	rotation := mgl32.Ident4()
	if m.RotationAxis.Len() > 0 {
		rotation = mgl32.HomogRotate3D(mgl32.DegToRad(m.RotationAngle), m.RotationAxis.Normalize())
	}
	scale := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	m.ModelMatrix = translation.Mul4(rotation).Mul4(scale)
	m.IsDirty = false
}

// CalculateBoundingSphere fits a sphere around the vertex positions.
func (m *Mesh) CalculateBoundingSphere() {
	n := m.VertexCount()
	if n == 0 {
		return
	}
	lo := mgl32.Vec3{float32(math.MaxFloat32), float32(math.MaxFloat32), float32(math.MaxFloat32)}
	hi := lo.Mul(-1)
	for i := 0; i < n; i++ {
		p := m.vertexPosition(i)
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	center := lo.Add(hi).Mul(0.5)

	var radius float32
	for i := 0; i < n; i++ {
		if d := m.vertexPosition(i).Sub(center).Len(); d > radius {
			radius = d
		}
	}
	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = radius
}

// WorldBoundingSphere transforms the bounding sphere by the model matrix.
func (m *Mesh) WorldBoundingSphere() (mgl32.Vec3, float32) {
	center := m.ModelMatrix.Mul4x1(m.BoundingSphereCenter.Vec4(1)).Vec3()
	scale := float32(math.Max(float64(m.Scale.X()), math.Max(float64(m.Scale.Y()), float64(m.Scale.Z()))))
	return center, m.BoundingSphereRadius * scale
}

func (m *Mesh) vertexPosition(i int) mgl32.Vec3 {
	o := i * FloatsPerVertex
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

func (m *Mesh) vertexNormal(i int) mgl32.Vec3 {
	o := i*FloatsPerVertex + 3
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// NewCubeMesh returns a unit cube centred on the origin, 36 vertices with
// per-face normals.
func NewCubeMesh() *Mesh {
	vertices := make([]float32, len(cubeVertices))
	copy(vertices, cubeVertices)
	return newMesh("cube", vertices, nil)
}

var cubeVertices = []float32{
	// positions        // normals          // uv
	-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,
	0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 0.0,
	0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
	0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,

	-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 0.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,

	-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,
	-0.5, 0.5, -0.5, -1.0, 0.0, 0.0, 1.0, 1.0,
	-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
	-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
	-0.5, -0.5, 0.5, -1.0, 0.0, 0.0, 0.0, 0.0,
	-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,

	0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 0.0, 0.0, 1.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0, 0.0, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,

	-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 1.0, 1.0,
	0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
	0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,

	-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
	0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 1.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
	0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
}

// TerrainOptions shapes the heightfield generated by NewTerrainMesh.
type TerrainOptions struct {
	Resolution int     // vertices per side, at least 2
	Size       float32 // world units per side
	Height     float32 // peak displacement
	Frequency  float64 // noise samples per side
	UVRepeat   float32
	Seed       int64
}

func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{
		Resolution: 128,
		Size:       60,
		Height:     6,
		Frequency:  4,
		UVRepeat:   16,
		Seed:       1,
	}
}

// NewTerrainMesh builds an indexed heightfield centred on the origin with
// heights from 2D Perlin noise.
func NewTerrainMesh(opts TerrainOptions) *Mesh {
	n := opts.Resolution
	if n < 2 {
		n = 2
	}
	noise := perlin.NewPerlin(2, 2, 3, opts.Seed)
	step := opts.Size / float32(n-1)
	half := opts.Size / 2

	heights := make([]float32, n*n)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			h := noise.Noise2D(float64(x)/float64(n)*opts.Frequency, float64(z)/float64(n)*opts.Frequency)
			heights[z*n+x] = float32(h) * opts.Height
		}
	}
	at := func(x, z int) float32 {
		x = clampInt(x, 0, n-1)
		z = clampInt(z, 0, n-1)
		return heights[z*n+x]
	}

	vertices := make([]float32, 0, n*n*FloatsPerVertex)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			// Central differences
			normal := mgl32.Vec3{
				at(x-1, z) - at(x+1, z),
				2 * step,
				at(x, z-1) - at(x, z+1),
			}.Normalize()
			u := float32(x) / float32(n-1) * opts.UVRepeat
			v := float32(z) / float32(n-1) * opts.UVRepeat
			vertices = append(vertices,
				float32(x)*step-half, at(x, z), float32(z)*step-half,
				normal.X(), normal.Y(), normal.Z(),
				u, v,
			)
		}
	}

	indices := make([]uint32, 0, 6*(n-1)*(n-1))
	for z := 0; z < n-1; z++ {
		for x := 0; x < n-1; x++ {
			i := uint32(z*n + x)
			below := i + uint32(n)
			indices = append(indices,
				i, below, i+1,
				i+1, below, below+1,
			)
		}
	}

	return newMesh("terrain", vertices, indices)
}

// HeightAt samples the terrain vertex nearest to world (x, z).
func (m *Mesh) HeightAt(x, z float32, opts TerrainOptions) float32 {
	n := opts.Resolution
	if n < 2 || m.VertexCount() != n*n {
		return 0
	}
	step := opts.Size / float32(n-1)
	ix := clampInt(int(math.Round(float64((x+opts.Size/2)/step))), 0, n-1)
	iz := clampInt(int(math.Round(float64((z+opts.Size/2)/step))), 0, n-1)
	return m.vertexPosition(iz*n + ix).Y()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
