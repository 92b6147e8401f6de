// Package tokenizer adapts HuggingFace tokenizers to inference.Tokenizer.
package tokenizer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/daulet/tokenizers"
)

type HuggingFaceTokenizer struct {
	tk *tokenizers.Tokenizer
}

// Load reads tokenizer.json from path when set, otherwise fetches the
// tokenizer for modelID from the hub into cacheDir.
func Load(modelID, path, cacheDir, authToken string) (*HuggingFaceTokenizer, error) {
	start := time.Now()

	var (
		tk  *tokenizers.Tokenizer
		err error
	)
	if path != "" {
		slog.Info("[Tokenizer] Loading tokenizer from file", slog.String("path", path))
		tk, err = tokenizers.FromFile(path)
	} else {
		slog.Info("[Tokenizer] Fetching tokenizer from hub", slog.String("model", modelID))
		dir := filepath.Join(cacheDir, "tokenizers")
		if authToken != "" {
			tk, err = tokenizers.FromPretrained(modelID, tokenizers.WithCacheDir(dir), tokenizers.WithAuthToken(authToken))
		} else {
			tk, err = tokenizers.FromPretrained(modelID, tokenizers.WithCacheDir(dir))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer %q: %w", modelID, err)
	}

	slog.Info("[Tokenizer] Tokenizer ready",
		slog.String("model", modelID),
		slog.Duration("elapsed", time.Since(start)))

	return &HuggingFaceTokenizer{tk: tk}, nil
}

func (t *HuggingFaceTokenizer) Encode(text string, addSpecial bool) ([]uint32, error) {
	ids, _ := t.tk.Encode(text, addSpecial)
	return ids, nil
}

func (t *HuggingFaceTokenizer) Decode(ids []uint32) (string, error) {
	return t.tk.Decode(ids, true), nil
}

func (t *HuggingFaceTokenizer) Close() error {
	return t.tk.Close()
}
