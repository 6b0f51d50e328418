package config

import (
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
	// Capture hides the cursor and keeps it inside the window for mouse look.
	Capture bool `yaml:"capture"`
}

type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	WorldUp          [3]float32 `yaml:"world_up"`
	Yaw              float32    `yaml:"yaw"`
	Pitch            float32    `yaml:"pitch"`
	MoveSpeed        float32    `yaml:"move_speed"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Zoom             float32    `yaml:"zoom"`
	PitchLimit       float32    `yaml:"pitch_limit"`
	MinZoom          float32    `yaml:"min_zoom"`
	MaxZoom          float32    `yaml:"max_zoom"`
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Scene  string       `yaml:"scene"`
	Seed   int64        `yaml:"seed"`
	Debug  bool         `yaml:"debug"`
}

// Default returns the configuration the sample runs with when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:   1024,
			Height:  768,
			Title:   "GopherFPS",
			Capture: true,
		},
		Camera: CameraConfig{
			Position:         [3]float32{0, 0, 3},
			WorldUp:          [3]float32{0, 1, 0},
			Yaw:              -90,
			Pitch:            0,
			MoveSpeed:        2.5,
			MouseSensitivity: 0.1,
			Zoom:             45,
			PitchLimit:       89,
			MinZoom:          1,
			MaxZoom:          45,
			Near:             0.1,
			Far:              100,
		},
		Scene: "lights",
		Seed:  1,
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "validating config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	cam := c.Camera
	if cam.WorldUp == [3]float32{} {
		return errors.New("camera.world_up: must be non-zero")
	}
	if cam.initialFront().Cross(mgl32.Vec3(cam.WorldUp).Normalize()).Len() < 1e-6 {
		return errors.Errorf("camera.world_up: %v is parallel to the view direction at yaw %v pitch %v", cam.WorldUp, cam.Yaw, cam.Pitch)
	}
	if cam.MoveSpeed <= 0 {
		return errors.Errorf("camera.move_speed: must be positive, got %v", cam.MoveSpeed)
	}
	if cam.MouseSensitivity <= 0 {
		return errors.Errorf("camera.mouse_sensitivity: must be positive, got %v", cam.MouseSensitivity)
	}
	if cam.PitchLimit <= 0 || cam.PitchLimit >= 90 {
		return errors.Errorf("camera.pitch_limit: must be in (0, 90), got %v", cam.PitchLimit)
	}
	if cam.MinZoom <= 0 || cam.MinZoom > cam.MaxZoom || cam.MaxZoom >= 180 {
		return errors.Errorf("camera.min_zoom/max_zoom: need 0 < min <= max < 180, got [%v, %v]", cam.MinZoom, cam.MaxZoom)
	}
	if cam.Zoom < cam.MinZoom || cam.Zoom > cam.MaxZoom {
		return errors.Errorf("camera.zoom: %v outside [%v, %v]", cam.Zoom, cam.MinZoom, cam.MaxZoom)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return errors.Errorf("camera.near/far: need 0 < near < far, got %v/%v", cam.Near, cam.Far)
	}
	if c.Scene == "" {
		return errors.New("scene: must be set")
	}
	return nil
}

// initialFront is the direction the camera faces before any input.
func (c CameraConfig) initialFront() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}
