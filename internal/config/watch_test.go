package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scene: lights\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 4)
	if err := Watch(ctx, path, func(cfg Config) { reloaded <- cfg }); err != nil {
		t.Fatal(err)
	}

	// An invalid file is skipped
	if err := os.WriteFile(path, []byte("camera:\n  move_speed: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("scene: terrain\ncamera:\n  move_speed: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Camera.MoveSpeed <= 0 {
				t.Fatalf("invalid config was delivered: %+v", cfg.Camera)
			}
			if cfg.Scene == "terrain" && cfg.Camera.MoveSpeed == 7 {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the config reload")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.yaml")
	if err := Watch(context.Background(), path, func(Config) {}); err == nil {
		t.Error("expected an error watching a missing directory")
	}
}
