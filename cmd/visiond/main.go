package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pixelsense/vision-service/internal/analyze"
	"github.com/pixelsense/vision-service/internal/config"
	"github.com/pixelsense/vision-service/internal/detect"
	"github.com/pixelsense/vision-service/internal/ocr"
	"github.com/pixelsense/vision-service/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// .env is optional; the environment itself always wins.
	_ = godotenv.Load()

	cfg, diags := config.Resolve()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	logger.Info("starting visiond", "version", Version, "commit", GitCommit, "addr", cfg.Addr)
	for _, d := range diags {
		logger.Info("adapter configuration", "component", d.Component, "enabled", d.Enabled, "reason", d.Reason)
	}

	assembler := buildAssembler(cfg, logger)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(assembler, diags, logger).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// buildAssembler constructs the configured adapters. Unconfigured optional
// adapters stay nil, which the assembler reports as a permanently disabled
// section for the process lifetime.
func buildAssembler(cfg *config.Config, logger *slog.Logger) *analyze.Assembler {
	a := &analyze.Assembler{
		PaletteSize: cfg.PaletteSize,
		Timeout:     cfg.RequestTimeout,
		Logger:      logger,
	}

	if cfg.ObjectDetectURL != "" {
		objects := detect.NewRemote("objects", cfg.ObjectDetectURL, detect.ObjectDefaults)
		a.Objects = objects
		pingAdapter(objects, logger)
	}
	if cfg.FaceDetectURL != "" {
		faces := detect.NewRemote("faces", cfg.FaceDetectURL, detect.FaceDefaults)
		a.Faces = faces
		pingAdapter(faces, logger)
	}
	if cfg.OCREnabled {
		a.Text = ocr.NewTesseract(cfg.OCRLanguage)
	}
	return a
}

// pingAdapter logs service reachability at startup. An unreachable service
// still leaves the adapter configured: requests degrade per call instead.
func pingAdapter(r *detect.Remote, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		logger.Warn("inference service not reachable", "adapter", r.Name(), "error", err)
	}
}
