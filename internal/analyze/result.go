package analyze

import (
	"github.com/pixelsense/vision-service/internal/geometry"
	"github.com/pixelsense/vision-service/internal/imaging"
)

// ImageSize is the pixel dimensions of the analyzed image.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ObjectDetection is one raw object detection, reported verbatim.
type ObjectDetection struct {
	Name string       `json:"name"`
	Conf float64      `json:"conf"`
	Box  geometry.Box `json:"box"`
}

// ObjectsSection summarizes the object detector's output. Enabled is false
// when the adapter was never configured or failed for this request; in that
// state Tags and Raw are empty but still present, so clients can tell
// "did not run" from "ran, found nothing".
type ObjectsSection struct {
	Enabled bool              `json:"enabled"`
	Tags    []string          `json:"tags"`
	Raw     []ObjectDetection `json:"raw"`
}

// FaceBox is one detected face with its precomputed area.
type FaceBox struct {
	geometry.Box
	Area float64 `json:"area"`
}

// LargestFace is the primary face, annotated with the fraction of the image
// it occupies. AreaPct is null when the image area is zero.
type LargestFace struct {
	FaceBox
	AreaPct *float64 `json:"areaPct"`
}

// FacesSection summarizes the face detector's output. The disabled state
// (Enabled false, Count 0) is distinct from "ran, zero faces" (Enabled true,
// Count 0).
type FacesSection struct {
	Enabled bool         `json:"enabled"`
	Count   int          `json:"count"`
	Largest *LargestFace `json:"largest,omitempty"`
	Boxes   []FaceBox    `json:"boxes,omitempty"`
}

// Result is the visual-feature response. Every section is always present;
// optional sections carry an explicit enabled discriminant instead of
// disappearing.
type Result struct {
	Faces     FacesSection           `json:"faces"`
	Objects   ObjectsSection         `json:"objects"`
	Palette   []imaging.PaletteEntry `json:"palette"`
	Contrast  float64                `json:"contrast"`
	ImageSize ImageSize              `json:"imageSize"`
}

// WordResult is one recognized word with its normalized corner-pair bbox.
type WordResult struct {
	BBox [4]float64 `json:"bbox"` // x0, y0, x1, y1
	Text string     `json:"text"`
	Conf float64    `json:"conf"`
}

// TextResult is the OCR response. AreaPct is the summed word-box coverage of
// the image, null when the image area is zero.
type TextResult struct {
	Text      string       `json:"text"`
	CharCount int          `json:"charCount"`
	AreaPct   *float64     `json:"areaPct"`
	Words     []WordResult `json:"words"`
	ImageSize ImageSize    `json:"imageSize"`
}
