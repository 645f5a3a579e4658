package imaging

import (
	"bytes"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(40, 30, color.NRGBA{10, 20, 30, 255})); err != nil {
		t.Fatalf("encode: %v", err)
	}

	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	w, h := Size(img)
	if w != 40 || h != 30 {
		t.Errorf("size: got %dx%d, want 40x30", w, h)
	}
}

func TestDecode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(16, 16, color.White), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := Decode(&buf); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image"))
	if err == nil {
		t.Fatal("expected error for non-image data")
	}
}

func TestNormalize(t *testing.T) {
	src := solidImage(8, 8, color.NRGBA{1, 2, 3, 255})
	out := Normalize(src)
	if out == nil {
		t.Fatal("nil normalized image")
	}
	w, h := Size(out)
	if w != 8 || h != 8 {
		t.Errorf("size: got %dx%d, want 8x8", w, h)
	}
	r, g, b, _ := out.At(4, 4).RGBA()
	if uint8(r>>8) != 1 || uint8(g>>8) != 2 || uint8(b>>8) != 3 {
		t.Errorf("pixel mismatch: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
