package server

import (
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/pixelsense/vision-service/internal/analyze"
	"github.com/pixelsense/vision-service/internal/imaging"
)

var errUploadTooLarge = errors.New("image upload too large")

// handleOCR serves POST /ocr: recognize text in the uploaded image.
func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, err := s.readImage(w, r)
	if err != nil {
		respondError(w, err.Error(), uploadErrorStatus(err))
		return
	}

	result, err := s.assembler.RecognizeText(r.Context(), img)
	if err != nil {
		if errors.Is(err, analyze.ErrRecognizerUnavailable) {
			respondError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		s.logger.Error("ocr request failed", "error", err)
		respondError(w, "text recognition failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

// handleAnalyze serves POST /analyze: visual features for the uploaded image.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, err := s.readImage(w, r)
	if err != nil {
		respondError(w, err.Error(), uploadErrorStatus(err))
		return
	}

	respondJSON(w, s.assembler.Analyze(r.Context(), img), http.StatusOK)
}

// handleHealth serves GET /healthz with the adapter startup diagnostics.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, map[string]interface{}{
		"status":   "ok",
		"adapters": s.diags,
	}, http.StatusOK)
}

// readImage extracts and decodes the uploaded image from the multipart form.
// The body is capped at s.maxUpload before parsing, so an oversized upload
// fails here rather than being buffered. Any failure is an input error: the
// whole request is rejected with no partial payload.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) (image.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("image file required")
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("image file required")
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("unreadable image")
	}
	return imaging.Normalize(img), nil
}

func uploadErrorStatus(err error) int {
	if errors.Is(err, errUploadTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
