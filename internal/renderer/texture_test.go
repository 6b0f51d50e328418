package renderer

import (
	"image/color"
	"testing"
)

var (
	testDark  = color.RGBA{20, 10, 0, 255}
	testLight = color.RGBA{220, 180, 120, 255}
)

func TestNoiseImageBounds(t *testing.T) {
	img := NoiseImage(32, 5, testDark, testLight)

	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := img.RGBAAt(x, y)
			if c.R < testDark.R || c.R > testLight.R || c.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v outside the tint range", x, y, c)
			}
		}
	}
}

func TestNoiseImageDeterministic(t *testing.T) {
	a := NoiseImage(16, 9, testDark, testLight)
	b := NoiseImage(16, 9, testDark, testLight)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("same seed should produce identical pixels, differs at %d", i)
		}
	}
}

func TestCheckerImage(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	img := CheckerImage(8, 2, white, black)

	if img.RGBAAt(0, 0) != white {
		t.Error("top-left cell should use the first colour")
	}
	if img.RGBAAt(4, 0) != black {
		t.Error("second cell should use the second colour")
	}
	if img.RGBAAt(4, 4) != white {
		t.Error("diagonal cell should use the first colour")
	}
}

func TestLerpRGBA(t *testing.T) {
	if got := lerpRGBA(testDark, testLight, 0); got != testDark {
		t.Errorf("t=0 should return the first colour, got %v", got)
	}
	if got := lerpRGBA(testDark, testLight, 1); got != testLight {
		t.Errorf("t=1 should return the second colour, got %v", got)
	}
}
