package imaging

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"
)

// solidImage creates an in-memory image filled with a single color.
func solidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// splitImage creates an image with the left half one color and the right
// half another.
func splitImage(width, height int, left, right color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestPalette_SolidColor(t *testing.T) {
	img := solidImage(100, 100, color.NRGBA{255, 128, 64, 255})

	entries := Palette(img, 5)
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
	if entries[0].Hex != "#ff8040" {
		t.Errorf("hex: got %s, want #ff8040", entries[0].Hex)
	}
	if entries[0].Pct != 1.0 {
		t.Errorf("pct: got %v, want 1.0", entries[0].Pct)
	}
}

func TestPalette_TwoColors(t *testing.T) {
	img := splitImage(100, 100, color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 255, 255})

	entries := Palette(img, 5)
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}

	got := map[string]float64{}
	for _, e := range entries {
		got[e.Hex] = e.Pct
	}
	for _, hex := range []string{"#ff0000", "#0000ff"} {
		pct, ok := got[hex]
		if !ok {
			t.Fatalf("missing color %s in %v", hex, got)
		}
		if math.Abs(pct-0.5) > 0.05 {
			t.Errorf("pct for %s: got %v, want ~0.5", hex, pct)
		}
	}
}

func TestPalette_Invariants(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 150))
	// Deterministic multi-color gradient.
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.NRGBA{uint8(x), uint8(y), uint8((x + y) / 2), 255})
		}
	}

	const k = 5
	entries := Palette(img, k)

	if len(entries) > k {
		t.Fatalf("entries: got %d, want <= %d", len(entries), k)
	}

	var sum float64
	for i, e := range entries {
		sum += e.Pct
		if e.Pct < 0 || e.Pct > 1 {
			t.Errorf("entry %d pct out of range: %v", i, e.Pct)
		}
		if i > 0 && entries[i-1].Pct < e.Pct {
			t.Errorf("entries not in non-increasing order at %d: %v then %v", i, entries[i-1].Pct, e.Pct)
		}
	}
	if sum > 1.0+1e-9 {
		t.Errorf("fractions sum above 1: %v", sum)
	}
}

func TestPalette_Deterministic(t *testing.T) {
	img := splitImage(128, 96, color.NRGBA{10, 200, 30, 255}, color.NRGBA{200, 10, 30, 255})

	first := Palette(img, 4)
	second := Palette(img, 4)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("palette not reproducible:\n first: %v\nsecond: %v", first, second)
	}
}

func TestPalette_MergesEqualMeans(t *testing.T) {
	// Three near-black pixels and one slightly lighter one: the cut splits
	// them into two buckets whose means both round to (2,2,2). The result
	// must collapse to a single entry rather than repeat the hex.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{2, 2, 2, 255})
	img.Set(1, 0, color.NRGBA{2, 2, 2, 255})
	img.Set(0, 1, color.NRGBA{2, 2, 2, 255})
	img.Set(1, 1, color.NRGBA{3, 3, 3, 255})

	entries := Palette(img, 2)
	if len(entries) != 1 {
		t.Fatalf("entries: got %v, want a single merged entry", entries)
	}
	if entries[0].Hex != "#020202" {
		t.Errorf("hex: got %s, want #020202", entries[0].Hex)
	}
	if entries[0].Pct != 1.0 {
		t.Errorf("pct: got %v, want 1.0", entries[0].Pct)
	}

	wide := Palette(img, 8)
	seen := map[string]bool{}
	for _, e := range wide {
		if seen[e.Hex] {
			t.Errorf("duplicate hex %s in %v", e.Hex, wide)
		}
		seen[e.Hex] = true
	}
}

func TestPalette_DegenerateInputs(t *testing.T) {
	if got := Palette(solidImage(10, 10, color.Black), 0); len(got) != 0 {
		t.Errorf("k=0: got %v, want empty", got)
	}
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if got := Palette(empty, 5); len(got) != 0 {
		t.Errorf("empty image: got %v, want empty", got)
	}
}
