package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/pixelsense/vision-service/internal/geometry"
)

// Tesseract is a Recognizer backed by the Tesseract OCR engine.
//
// A fresh gosseract client is created per call: the underlying engine is not
// reentrant, and a per-call client keeps Recognize safe for concurrent
// requests without a serialization lock.
type Tesseract struct {
	language string
}

// NewTesseract creates a Tesseract recognizer for the given language code
// (e.g. "eng"). The corresponding training data must be installed on the
// system; an empty language defaults to English.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language}
}

// Name implements Recognizer.
func (t *Tesseract) Name() string { return "tesseract" }

// Recognize implements Recognizer using word-level bounding boxes.
//
// Words the engine returns with empty text are dropped. Tesseract reports
// confidence on a 0-100 scale; it is rescaled to [0,1].
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image for ocr: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("ocr inference: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Region:     quadFromRect(box.Box),
		})
	}
	return words, nil
}

// quadFromRect expands an axis-aligned rectangle into the canonical
// four-point order: top-left, top-right, bottom-right, bottom-left.
func quadFromRect(r image.Rectangle) geometry.Quad {
	return geometry.Quad{
		{X: float64(r.Min.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Min.Y)},
		{X: float64(r.Max.X), Y: float64(r.Max.Y)},
		{X: float64(r.Min.X), Y: float64(r.Max.Y)},
	}
}
