// Package config resolves the process configuration from the environment.
//
// Optional models that are not configured become explicit startup decisions:
// Resolve returns a diagnostic per adapter saying whether it is enabled and
// why, so a missing face model is a logged state, not a hidden runtime
// branch.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config is the resolved process configuration.
type Config struct {
	Addr            string        // HTTP listen address
	ObjectDetectURL string        // base URL of the object inference service
	FaceDetectURL   string        // base URL of the face inference service; empty disables faces
	OCREnabled      bool          // whether the Tesseract recognizer is constructed
	OCRLanguage     string        // Tesseract language code
	PaletteSize     int           // dominant colors per response
	RequestTimeout  time.Duration // per-request deadline in the assembler
	LogLevel        slog.Level
}

// Diagnostic records one adapter's startup decision.
type Diagnostic struct {
	Component string `json:"component"`
	Enabled   bool   `json:"enabled"`
	Reason    string `json:"reason"`
}

// Resolve reads the environment and returns the configuration together with
// the adapter diagnostics. It never fails: unparsable values fall back to
// defaults.
func Resolve() (*Config, []Diagnostic) {
	cfg := &Config{
		Addr:            getEnv("VISIOND_ADDR", ":8080"),
		ObjectDetectURL: getEnv("OBJECT_DETECT_URL", "http://localhost:5000"),
		FaceDetectURL:   getEnv("FACE_DETECT_URL", ""),
		OCREnabled:      getEnvBool("OCR_ENABLED", true),
		OCRLanguage:     getEnv("OCR_LANGUAGE", "eng"),
		PaletteSize:     getEnvInt("PALETTE_SIZE", 5),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogLevel:        parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	diags := []Diagnostic{
		{Component: "objects", Enabled: cfg.ObjectDetectURL != "",
			Reason: fmt.Sprintf("OBJECT_DETECT_URL=%s", cfg.ObjectDetectURL)},
	}
	if cfg.FaceDetectURL == "" {
		diags = append(diags, Diagnostic{Component: "faces", Enabled: false,
			Reason: "FACE_DETECT_URL not set; face detection disabled"})
	} else {
		diags = append(diags, Diagnostic{Component: "faces", Enabled: true,
			Reason: fmt.Sprintf("FACE_DETECT_URL=%s", cfg.FaceDetectURL)})
	}
	if cfg.OCREnabled {
		diags = append(diags, Diagnostic{Component: "text", Enabled: true,
			Reason: fmt.Sprintf("tesseract language %q", cfg.OCRLanguage)})
	} else {
		diags = append(diags, Diagnostic{Component: "text", Enabled: false,
			Reason: "OCR_ENABLED=false; text recognition disabled"})
	}

	return cfg, diags
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
