package scene

import (
	behaviour "GopherFPS/internal/behaviour"
	"GopherFPS/internal/renderer"
	"sort"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

var ErrUnknownScene = errors.New("unknown scene")

// Host is the part of the engine a scene needs.
type Host interface {
	GetRenderer() renderer.Render
	GetCamera() *renderer.EulerCamera
	SetLighting(lighting *renderer.Lighting)
	SetClearColor(color mgl.Vec3)
	SetOnClick(handler func(ray renderer.Ray))
}

type constructor func(host Host, seed int64) behaviour.PlayerBehaviour

var scenes = map[string]constructor{
	"lights":  func(host Host, seed int64) behaviour.PlayerBehaviour { return NewLightsScene(host, seed) },
	"terrain": func(host Host, seed int64) behaviour.PlayerBehaviour { return NewTerrainScene(host, seed) },
}

// New returns the named scene. Nothing touches the GPU until the scene's
// Start runs inside the render loop.
func New(name string, host Host, seed int64) (behaviour.PlayerBehaviour, error) {
	ctor, ok := scenes[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %v)", name, Names())
	}
	return ctor(host, seed), nil
}

func Names() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
