package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"

	"github.com/pixelsense/vision-service/internal/geometry"
)

// Remote is a Detector backed by an HTTP inference service.
//
// The image is resized to the configured inference resolution, posted as
// multipart form data to <baseURL>/detect, and the returned corner-pair
// boxes are scaled back into original-image coordinates.
//
// # Wire Format
//
// The request is a multipart form with three fields:
//   - image: the resized frame, PNG-encoded
//   - conf: the confidence floor, as a decimal string
//   - iou: the overlap suppression threshold, as a decimal string
//
// The service answers with a JSON object of the form
//
//	{"detections": [{"name": "...", "conf": 0.9, "box": [x1, y1, x2, y2]}]}
//
// where box coordinates are in the sent (resized) image's pixel space.
//
// # Coordinate Mapping
//
// Resizing preserves aspect ratio on the long edge, so one scalar maps the
// service's coordinates back to the original image. Detect applies it to
// both corners before normalizing each pair into a Box, which means callers
// only ever see original-image coordinates.
//
// The client is stateless per call and safe for concurrent use.
type Remote struct {
	name    string
	baseURL string
	cfg     Config
	client  *http.Client
}

// NewRemote creates a detector adapter for the inference service at baseURL.
func NewRemote(name, baseURL string, cfg Config) *Remote {
	return &Remote{
		name:    name,
		baseURL: baseURL,
		cfg:     cfg,
		client:  &http.Client{},
	}
}

// Name implements Detector.
func (r *Remote) Name() string { return r.name }

// remoteDetection is the wire shape one detection comes back as.
type remoteDetection struct {
	Name string     `json:"name"`
	Conf float64    `json:"conf"`
	Box  [4]float64 `json:"box"` // x1, y1, x2, y2 in sent-image coordinates
}

// Detect implements Detector against the remote inference service.
//
// Parameters:
//   - ctx: bounds the HTTP round trip; cancellation aborts the request.
//   - img: the original-resolution image to run inference on.
//
// Returns:
//   - Detections in original-image coordinates, filtered to the configured
//     confidence floor. The floor is applied client-side as well, so a
//     service that ignores the conf field still yields consistent output.
//   - An error when the service is unreachable, answers non-200, or returns
//     a body that does not decode. Callers treat any error as a degraded
//     section, never a failed request.
func (r *Remote) Detect(ctx context.Context, img image.Image) ([]Detection, error) {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		return []Detection{}, nil
	}

	resized, scale := r.resize(img, origW, origH)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", "image.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, resized); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	_ = writer.WriteField("conf", strconv.FormatFloat(r.cfg.MinConfidence, 'f', -1, 64))
	_ = writer.WriteField("iou", strconv.FormatFloat(r.cfg.Overlap, 'f', -1, 64))
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/detect", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s inference request: %w", r.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s inference failed with status %d", r.name, resp.StatusCode)
	}

	var result struct {
		Detections []remoteDetection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", r.name, err)
	}

	detections := make([]Detection, 0, len(result.Detections))
	for _, d := range result.Detections {
		if d.Conf < r.cfg.MinConfidence {
			continue
		}
		detections = append(detections, Detection{
			Label:      d.Name,
			Confidence: d.Conf,
			Box: geometry.FromCorners(
				d.Box[0]*scale, d.Box[1]*scale,
				d.Box[2]*scale, d.Box[3]*scale,
			),
		})
	}
	return detections, nil
}

// resize scales the image so its long edge matches the inference resolution
// and returns the factor that maps returned coordinates back to the
// original image.
func (r *Remote) resize(img image.Image, origW, origH int) (image.Image, float64) {
	size := r.cfg.Size
	if size <= 0 {
		return img, 1
	}

	long := origW
	if origH > long {
		long = origH
	}
	if long == size {
		return img, 1
	}

	var resized image.Image
	if origW >= origH {
		resized = imaging.Resize(img, size, 0, imaging.Lanczos)
	} else {
		resized = imaging.Resize(img, 0, size, imaging.Lanczos)
	}
	return resized, float64(long) / float64(size)
}

// Ping checks whether the inference service is reachable. Used for startup
// diagnostics only; a failed ping does not disable the adapter.
func (r *Remote) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s service unhealthy: status %d", r.name, resp.StatusCode)
	}
	return nil
}
