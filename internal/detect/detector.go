// Package detect defines the uniform contract for box-based detector models
// and the adapter that talks to remote inference services.
//
// Detector models themselves are opaque collaborators: given an image and a
// tuning config they return labeled, scored bounding regions. This package
// does not care how a model was trained or loaded; it only normalizes what
// comes back into canonical geometry.
package detect

import (
	"context"
	"image"

	"github.com/pixelsense/vision-service/internal/geometry"
)

// Detection is one model output: a label, a confidence in [0,1] and a
// canonical box in original-image pixel coordinates. Detections are
// immutable once produced.
type Detection struct {
	Label      string
	Confidence float64
	Box        geometry.Box
}

// Config carries the inference tuning for one detector variant.
type Config struct {
	// Size is the inference resolution: the long edge the image is resized
	// to before being handed to the model.
	Size int

	// MinConfidence drops detections scored below this floor.
	MinConfidence float64

	// Overlap is the IoU threshold the model applies when suppressing
	// overlapping boxes.
	Overlap float64
}

// Default configs per variant. Face detection at small scale needs a higher
// input resolution and a lower confidence floor than general object
// detection.
var (
	ObjectDefaults = Config{Size: 640, MinConfidence: 0.25, Overlap: 0.45}
	FaceDefaults   = Config{Size: 1280, MinConfidence: 0.15, Overlap: 0.50}
)

// Detector is the uniform capability contract every concrete adapter
// implements. Implementations must be safe for concurrent use: inference
// against a loaded model is stateless, and adapters that wrap a
// non-reentrant engine serialize calls internally.
type Detector interface {
	// Name identifies the adapter in logs and diagnostics.
	Name() string

	// Detect runs inference on the image and returns detections in
	// original-image pixel coordinates, already filtered by the adapter's
	// confidence floor.
	Detect(ctx context.Context, img image.Image) ([]Detection, error)
}
