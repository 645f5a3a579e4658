// Package ocr wraps text-recognition engines behind a uniform contract.
//
// A recognizer turns an image into a list of recognized words, each with a
// confidence score and a four-point region. Regions are quads rather than
// boxes because rotated-text engines emit non-axis-aligned geometry; the
// aggregation pipeline normalizes them downstream.
package ocr

import (
	"context"
	"image"

	"github.com/pixelsense/vision-service/internal/geometry"
)

// Word is one recognized word in detector-returned order.
type Word struct {
	// Text is the recognized content.
	Text string

	// Confidence is the recognition confidence in [0,1].
	Confidence float64

	// Region is the four-point boundary of the word in image pixel
	// coordinates, top-left origin.
	Region geometry.Quad
}

// Recognizer is the uniform contract for text-recognition engines.
type Recognizer interface {
	// Name identifies the recognizer in logs and diagnostics.
	Name() string

	// Recognize extracts words from the image, preserving the engine's
	// return order.
	Recognize(ctx context.Context, img image.Image) ([]Word, error)
}
