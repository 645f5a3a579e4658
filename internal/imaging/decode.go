package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// Decode reads image bytes and returns the decoded image.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. WebP is tried as
// a fallback so that lossy and lossless variants both work.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if wimg, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
			return wimg, nil
		}
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Normalize converts any decoded image into a plain RGBA pixel buffer so the
// analysis stages see a uniform three-channel color view regardless of the
// source color model.
func Normalize(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Size reports the pixel dimensions of an image.
func Size(img image.Image) (width, height int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
