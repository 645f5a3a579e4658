package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// Contrast computes a normalized global contrast score in [0,1].
//
// The image is reduced to grayscale and the population standard deviation of
// pixel intensities (0-255) is divided by 255. This is a cheap global proxy
// for contrast, not a perceptual metric.
func Contrast(img image.Image) float64 {
	gray := effect.Grayscale(img)

	n := len(gray.Pix) / 4
	if n == 0 {
		return 0
	}

	var sum, sumSq float64
	for i := 0; i < len(gray.Pix); i += 4 {
		v := float64(gray.Pix[i]) // R==G==B after grayscale
		sum += v
		sumSq += v * v
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0 // float round-off on flat images
	}
	return math.Sqrt(variance) / 255.0
}
