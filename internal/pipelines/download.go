// Package pipelines hosts the local ONNX inference pipelines run through hugot.
package pipelines

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
)

// LocalModelPath is where DownloadModel places modelID under modelDir.
func LocalModelPath(modelDir, modelID string) string {
	return filepath.Join(modelDir, strings.ReplaceAll(modelID, "/", "_"))
}

// EnsureModel returns the local path of modelID, downloading it from the
// hub on first use.
func EnsureModel(modelDir, modelID string) (string, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	path := LocalModelPath(modelDir, modelID)
	if _, err := os.Stat(path); err == nil {
		slog.Info("[Pipelines] Using existing model", slog.String("path", path))
		return path, nil
	}

	slog.Info("[Pipelines] Model not found, downloading...",
		slog.String("model", modelID),
		slog.String("dir", modelDir))

	downloaded, err := hugot.DownloadModel(modelID, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", modelID, err)
	}

	slog.Info("[Pipelines] Model downloaded successfully", slog.String("path", downloaded))
	return downloaded, nil
}
