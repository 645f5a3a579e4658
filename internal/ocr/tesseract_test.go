package ocr

import (
	"image"
	"testing"

	"github.com/pixelsense/vision-service/internal/geometry"
)

func TestQuadFromRect(t *testing.T) {
	q := quadFromRect(image.Rect(10, 20, 110, 70))

	want := geometry.Quad{
		{X: 10, Y: 20},
		{X: 110, Y: 20},
		{X: 110, Y: 70},
		{X: 10, Y: 70},
	}
	if q != want {
		t.Errorf("quad: got %+v, want %+v", q, want)
	}

	// The normalized box must round-trip the rectangle exactly.
	box := geometry.FromQuad(q)
	if box.X != 10 || box.Y != 20 || box.W != 100 || box.H != 50 {
		t.Errorf("normalized box: got %+v", box)
	}
}

func TestNewTesseract_DefaultLanguage(t *testing.T) {
	if got := NewTesseract("").language; got != "eng" {
		t.Errorf("default language: got %s, want eng", got)
	}
	if got := NewTesseract("deu").language; got != "deu" {
		t.Errorf("language: got %s, want deu", got)
	}
}
