// Package analyze fuses the per-model outputs of the detector and recognizer
// adapters into one consistent, geometry-normalized response.
//
// The Assembler is the orchestration core: it fans out the independent
// analysis branches (palette/contrast, object detection, face detection),
// joins them, and degrades any branch that fails or misses the per-request
// deadline to an explicit disabled state instead of failing the request.
package analyze

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/pixelsense/vision-service/internal/detect"
	"github.com/pixelsense/vision-service/internal/geometry"
	"github.com/pixelsense/vision-service/internal/imaging"
	"github.com/pixelsense/vision-service/internal/ocr"
	"github.com/pixelsense/vision-service/internal/taxonomy"
)

// ErrRecognizerUnavailable is returned by RecognizeText when no text
// recognizer was configured. The OCR endpoint requires one; everything else
// treats missing adapters as a disabled section.
var ErrRecognizerUnavailable = errors.New("text recognition not configured")

const (
	defaultPaletteSize = 5
	defaultTimeout     = 30 * time.Second
)

// Assembler runs the configured adapters over one image and assembles their
// output into response objects. A nil adapter is a permanently disabled
// section and is never invoked.
//
// Adapters are shared, read-only resources; the Assembler itself holds no
// per-request state and is safe for concurrent use.
type Assembler struct {
	Objects detect.Detector // nil: objects section disabled
	Faces   detect.Detector // nil: faces section disabled
	Text    ocr.Recognizer  // nil: OCR endpoint unavailable

	PaletteSize int           // dominant colors to report; defaults to 5
	Timeout     time.Duration // per-request deadline; defaults to 30s
	Logger      *slog.Logger  // defaults to slog.Default()
}

// TextEnabled reports whether a text recognizer is configured.
func (a *Assembler) TextEnabled() bool { return a.Text != nil }

// Analyze runs the visual-feature pipeline over one decoded image.
//
// Palette and contrast are always computed; object and face detection run
// only when an adapter is configured. The three branches are independent and
// run concurrently under a shared per-request deadline.
//
// Parameters:
//   - ctx: request context. The assembler layers its own timeout on top, so
//     a branch can never outlive the request.
//   - img: the decoded, normalized image to analyze.
//
// Returns:
//   - A Result whose sections are always present. Analyze itself never
//     fails; per-branch failures surface as disabled sections.
//
// # Degradation
//
// A branch that returns an error or misses the deadline leaves its section
// in the disabled state (Enabled false, payload empty) and logs a warning.
// The other branches are unaffected and the response is still returned, so
// a flaky detector backend degrades one section rather than the request.
//
// # Concurrency
//
// Each branch writes a disjoint subset of the Result fields and they are
// joined before the Result escapes, so no locking is involved. The
// Assembler itself is stateless across requests.
func (a *Assembler) Analyze(ctx context.Context, img image.Image) *Result {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	w, h := imaging.Size(img)
	imageArea := float64(w) * float64(h)

	res := &Result{
		Faces:     FacesSection{},
		Objects:   ObjectsSection{Tags: []string{}, Raw: []ObjectDetection{}},
		Palette:   []imaging.PaletteEntry{},
		ImageSize: ImageSize{Width: w, Height: h},
	}

	// Branches write disjoint fields of res, so no locking is needed.
	var g errgroup.Group
	g.Go(func() error {
		res.Palette = imaging.Palette(img, a.paletteSize())
		res.Contrast = imaging.Contrast(img)
		return nil
	})
	g.Go(func() error {
		a.runObjects(ctx, img, res)
		return nil
	})
	g.Go(func() error {
		a.runFaces(ctx, img, imageArea, res)
		return nil
	})
	_ = g.Wait()

	return res
}

func (a *Assembler) runObjects(ctx context.Context, img image.Image, res *Result) {
	if a.Objects == nil {
		return
	}
	dets, err := a.Objects.Detect(ctx, img)
	if err != nil {
		a.log().Warn("objects section degraded", "detector", a.Objects.Name(), "error", err)
		return
	}

	labels := make([]string, 0, len(dets))
	raw := make([]ObjectDetection, 0, len(dets))
	for _, d := range dets {
		labels = append(labels, d.Label)
		raw = append(raw, ObjectDetection{Name: d.Label, Conf: d.Confidence, Box: d.Box})
	}
	res.Objects = ObjectsSection{
		Enabled: true,
		Tags:    taxonomy.Coarsen(labels),
		Raw:     raw,
	}
}

func (a *Assembler) runFaces(ctx context.Context, img image.Image, imageArea float64, res *Result) {
	if a.Faces == nil {
		return
	}
	dets, err := a.Faces.Detect(ctx, img)
	if err != nil {
		a.log().Warn("faces section degraded", "detector", a.Faces.Name(), "error", err)
		return
	}

	section := FacesSection{Enabled: true, Count: len(dets)}
	if len(dets) > 0 {
		boxes := make([]FaceBox, len(dets))
		largest := 0
		for i, d := range dets {
			boxes[i] = FaceBox{Box: d.Box, Area: d.Box.Area()}
			if boxes[i].Area > boxes[largest].Area {
				largest = i
			}
		}
		section.Boxes = boxes
		section.Largest = &LargestFace{
			FaceBox: boxes[largest],
			AreaPct: geometry.CoverageFraction([]geometry.Box{boxes[largest].Box}, imageArea),
		}
	}
	res.Faces = section
}

// RecognizeText runs the OCR pipeline over one decoded image: recognize
// words, normalize their quadrilateral regions to axis-aligned boxes, join
// the text in recognizer order, and compute the aggregate coverage fraction
// over all word boxes.
//
// Parameters:
//   - ctx: request context; the assembler layers its own timeout on top.
//   - img: the decoded, normalized image to read text from.
//
// Returns:
//   - A TextResult with the joined text, its non-space character count, the
//     per-word boxes and confidences, and the covered area fraction.
//   - ErrRecognizerUnavailable when no recognizer is configured; the OCR
//     endpoint is the one operation that cannot run without its adapter.
//
// # Degradation
//
// A recognizer failure at call time is logged and degrades to an empty
// payload, not an error: the response keeps its full schema with empty text,
// zero character count, no words, and a zero coverage fraction.
func (a *Assembler) RecognizeText(ctx context.Context, img image.Image) (*TextResult, error) {
	if a.Text == nil {
		return nil, ErrRecognizerUnavailable
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	w, h := imaging.Size(img)
	imageArea := float64(w) * float64(h)

	res := &TextResult{
		Words:     []WordResult{},
		ImageSize: ImageSize{Width: w, Height: h},
	}

	words, err := a.Text.Recognize(ctx, img)
	if err != nil {
		a.log().Warn("text recognition degraded", "recognizer", a.Text.Name(), "error", err)
		res.AreaPct = geometry.CoverageFraction(nil, imageArea)
		return res, nil
	}

	boxes := make([]geometry.Box, 0, len(words))
	texts := make([]string, 0, len(words))
	for _, word := range words {
		box := geometry.FromQuad(word.Region)
		boxes = append(boxes, box)
		texts = append(texts, word.Text)
		res.Words = append(res.Words, WordResult{
			BBox: [4]float64{box.X, box.Y, box.X + box.W, box.Y + box.H},
			Text: word.Text,
			Conf: word.Confidence,
		})
	}

	res.Text = strings.Join(texts, " ")
	res.CharCount = countNonSpace(res.Text)
	res.AreaPct = geometry.CoverageFraction(boxes, imageArea)
	return res, nil
}

func (a *Assembler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (a *Assembler) paletteSize() int {
	if a.PaletteSize <= 0 {
		return defaultPaletteSize
	}
	return a.PaletteSize
}

func (a *Assembler) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
