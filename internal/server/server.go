// Package server is the HTTP transport for the analysis pipeline.
//
// Two endpoints accept a single image upload (multipart field "image"):
// POST /ocr returns recognized text, and POST /analyze returns visual
// features. GET /healthz reports process status and the per-adapter startup
// diagnostics. Input errors (missing or undecodable image) are the only
// client-visible failures; adapter problems surface inside a successful
// response as disabled sections.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pixelsense/vision-service/internal/analyze"
	"github.com/pixelsense/vision-service/internal/config"
)

// maxUploadBytes caps the request body size; larger uploads are rejected
// before the form is parsed.
const maxUploadBytes = 50 << 20 // 50MB

// Server wires the assembler into HTTP handlers.
type Server struct {
	assembler *analyze.Assembler
	diags     []config.Diagnostic
	logger    *slog.Logger
	maxUpload int64
}

// New creates a Server around an assembler. The diagnostics are the adapter
// startup decisions reported by /healthz.
func New(assembler *analyze.Assembler, diags []config.Diagnostic, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{assembler: assembler, diags: diags, logger: logger, maxUpload: maxUploadBytes}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ocr", s.handleOCR)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
