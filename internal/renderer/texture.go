package renderer

import (
	"image"
	"image/color"

	perlin "github.com/aquilax/go-perlin"
)

// NoiseImage renders a size×size turbulence texture tinted between dark and
// light. The same seed always produces the same pixels.
func NoiseImage(size int, seed int64, dark, light color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	noise := perlin.NewPerlin(2, 2, 4, seed)
	scale := 8.0 / float64(size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := noise.Noise2D(float64(x)*scale, float64(y)*scale)
			// Noise2D stays roughly inside [-1, 1]
			t := clamp01(v*0.5 + 0.5)
			img.SetRGBA(x, y, lerpRGBA(dark, light, t))
		}
	}
	return img
}

// CheckerImage renders cells×cells alternating squares, used as a specular map.
func CheckerImage(size, cells int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cells < 1 {
		cells = 1
	}
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
