package imaging

import (
	"image/color"
	"math"
	"testing"
)

func TestContrast_SolidGrayIsZero(t *testing.T) {
	img := solidImage(80, 60, color.NRGBA{128, 128, 128, 255})
	if got := Contrast(img); got != 0 {
		t.Errorf("solid gray contrast: got %v, want 0", got)
	}
}

func TestContrast_BlackWhiteHalves(t *testing.T) {
	img := splitImage(100, 100, color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 255})

	got := Contrast(img)
	// Population stddev of a 50/50 split of {0,255} is 127.5 -> 0.5.
	if math.Abs(got-0.5) > 0.01 {
		t.Errorf("contrast: got %v, want ~0.5", got)
	}
}

func TestContrast_InRange(t *testing.T) {
	imgs := []color.NRGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{13, 200, 77, 255},
	}
	for _, c := range imgs {
		base := splitImage(64, 64, c, color.NRGBA{255 - c.R, 255 - c.G, 255 - c.B, 255})
		got := Contrast(base)
		if got < 0 || got > 1 {
			t.Errorf("contrast out of range for %v: %v", c, got)
		}
	}
}
