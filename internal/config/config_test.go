package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Camera.Yaw != -90 || cfg.Camera.Pitch != 0 {
		t.Errorf("expected yaw -90 pitch 0, got %v %v", cfg.Camera.Yaw, cfg.Camera.Pitch)
	}
	if cfg.Camera.PitchLimit != 89 || cfg.Camera.MinZoom != 1 || cfg.Camera.MaxZoom != 45 {
		t.Errorf("unexpected default limits: %+v", cfg.Camera)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
camera:
  position: [1, 2, 3]
  move_speed: 5
scene: terrain
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 768 {
		t.Errorf("height should keep default 768, got %d", cfg.Window.Height)
	}
	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected position [1 2 3], got %v", cfg.Camera.Position)
	}
	if cfg.Camera.MoveSpeed != 5 {
		t.Errorf("expected move speed 5, got %v", cfg.Camera.MoveSpeed)
	}
	if cfg.Camera.MouseSensitivity != 0.1 {
		t.Errorf("sensitivity should keep default, got %v", cfg.Camera.MouseSensitivity)
	}
	if cfg.Scene != "terrain" {
		t.Errorf("expected scene terrain, got %q", cfg.Scene)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "reading config") {
		t.Errorf("error should say what failed, got %v", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "camera: [unterminated")

	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidateAcceptsTiltedWorldUp(t *testing.T) {
	cfg := Default()
	cfg.Camera.WorldUp = [3]float32{0, 1, 1}
	if err := cfg.Validate(); err != nil {
		t.Errorf("tilted world up should be valid, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"zero world up", func(c *Config) { c.Camera.WorldUp = [3]float32{} }, "world_up"},
		{"world up along front", func(c *Config) { c.Camera.WorldUp = [3]float32{0, 0, 1} }, "world_up"},
		{"world up against front", func(c *Config) { c.Camera.WorldUp = [3]float32{0, 0, -4} }, "world_up"},
		{"looking straight up", func(c *Config) { c.Camera.Pitch = 90 }, "world_up"},
		{"negative speed", func(c *Config) { c.Camera.MoveSpeed = -1 }, "move_speed"},
		{"zero sensitivity", func(c *Config) { c.Camera.MouseSensitivity = 0 }, "mouse_sensitivity"},
		{"pitch limit at pole", func(c *Config) { c.Camera.PitchLimit = 90 }, "pitch_limit"},
		{"inverted zoom bounds", func(c *Config) { c.Camera.MinZoom = 50 }, "min_zoom"},
		{"zoom out of bounds", func(c *Config) { c.Camera.Zoom = 60 }, "camera.zoom"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }, "near/far"},
		{"empty scene", func(c *Config) { c.Scene = "" }, "scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %q", err, tt.field)
			}
		})
	}
}
