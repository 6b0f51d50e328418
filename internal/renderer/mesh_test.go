package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCubeMesh(t *testing.T) {
	cube := NewCubeMesh()

	if cube.VertexCount() != 36 {
		t.Fatalf("expected 36 vertices, got %d", cube.VertexCount())
	}
	if len(cube.Indices) != 0 {
		t.Error("cube is drawn without an index buffer")
	}
	for i := 0; i < cube.VertexCount(); i++ {
		if l := cube.vertexNormal(i).Len(); math.Abs(float64(l)-1) > eps {
			t.Fatalf("vertex %d normal length %v", i, l)
		}
	}

	want := float32(math.Sqrt(3) / 2)
	if math.Abs(float64(cube.BoundingSphereRadius-want)) > eps {
		t.Errorf("bounding radius = %v, want %v", cube.BoundingSphereRadius, want)
	}
	assertVec(t, "bounding center", cube.BoundingSphereCenter, mgl32.Vec3{})
}

func TestNewCubeMeshCopiesVertices(t *testing.T) {
	a := NewCubeMesh()
	a.Vertices[0] = 99

	if NewCubeMesh().Vertices[0] == 99 {
		t.Error("cube meshes should not share vertex storage")
	}
}

func TestMeshModelMatrix(t *testing.T) {
	m := NewCubeMesh()
	m.SetPosition(mgl32.Vec3{1, 2, 3})
	m.SetScale(mgl32.Vec3{2, 2, 2})

	if !m.IsDirty {
		t.Fatal("changing the transform should mark the mesh dirty")
	}
	m.UpdateModelMatrix()
	if m.IsDirty {
		t.Error("UpdateModelMatrix should clear the dirty flag")
	}

	p := m.ModelMatrix.Mul4x1(mgl32.Vec4{0.5, 0, 0, 1}).Vec3()
	assertVec(t, "transformed vertex", p, mgl32.Vec3{2, 2, 3})

	center, radius := m.WorldBoundingSphere()
	assertVec(t, "world center", center, mgl32.Vec3{1, 2, 3})
	if math.Abs(float64(radius)-math.Sqrt(3)) > eps {
		t.Errorf("world radius = %v, want %v", radius, math.Sqrt(3))
	}
}

func TestMeshRotation(t *testing.T) {
	m := NewCubeMesh()
	m.SetRotation(mgl32.Vec3{0, 1, 0}, 90)
	m.UpdateModelMatrix()

	p := m.ModelMatrix.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec(t, "rotated point", p, mgl32.Vec3{0, 0, -1})
}

func TestNewTerrainMesh(t *testing.T) {
	opts := DefaultTerrainOptions()
	opts.Resolution = 16
	terrain := NewTerrainMesh(opts)

	n := opts.Resolution
	if terrain.VertexCount() != n*n {
		t.Fatalf("expected %d vertices, got %d", n*n, terrain.VertexCount())
	}
	if len(terrain.Indices) != 6*(n-1)*(n-1) {
		t.Errorf("expected %d indices, got %d", 6*(n-1)*(n-1), len(terrain.Indices))
	}
	for _, idx := range terrain.Indices {
		if int(idx) >= terrain.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}

	for i := 0; i < terrain.VertexCount(); i++ {
		normal := terrain.vertexNormal(i)
		if math.Abs(float64(normal.Len())-1) > eps {
			t.Fatalf("vertex %d normal not unit: %v", i, normal)
		}
		if normal.Y() <= 0 {
			t.Fatalf("vertex %d normal should point up, got %v", i, normal)
		}
		if h := terrain.vertexPosition(i).Y(); math.Abs(float64(h)) > 2*float64(opts.Height) {
			t.Fatalf("vertex %d height %v far outside ±%v", i, h, opts.Height)
		}
	}

	first := terrain.vertexPosition(0)
	last := terrain.vertexPosition(n*n - 1)
	if first.X() != -opts.Size/2 || first.Z() != -opts.Size/2 {
		t.Errorf("terrain should start at -size/2, got %v", first)
	}
	if math.Abs(float64(last.X()-opts.Size/2)) > 1e-4 || math.Abs(float64(last.Z()-opts.Size/2)) > 1e-4 {
		t.Errorf("terrain should end at size/2, got %v", last)
	}
}

func TestNewTerrainMeshDeterministic(t *testing.T) {
	opts := DefaultTerrainOptions()
	opts.Resolution = 8

	a := NewTerrainMesh(opts)
	b := NewTerrainMesh(opts)

	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("same seed should give the same terrain, differs at %d", i)
		}
	}
}

func TestTerrainHeightAt(t *testing.T) {
	opts := DefaultTerrainOptions()
	opts.Resolution = 8
	terrain := NewTerrainMesh(opts)

	corner := terrain.vertexPosition(0)
	if h := terrain.HeightAt(corner.X(), corner.Z(), opts); h != corner.Y() {
		t.Errorf("HeightAt corner = %v, want %v", h, corner.Y())
	}
	if h := terrain.HeightAt(-1000, -1000, opts); h != corner.Y() {
		t.Errorf("points outside the terrain should clamp to the edge, got %v", h)
	}
	if h := NewCubeMesh().HeightAt(0, 0, opts); h != 0 {
		t.Errorf("non-terrain meshes should report 0, got %v", h)
	}
}
