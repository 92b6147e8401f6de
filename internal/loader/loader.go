// Package loader builds the process-lifetime model handles from config.
package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spacesedan/newsnlp/config"
	"github.com/spacesedan/newsnlp/internal/clients"
	"github.com/spacesedan/newsnlp/internal/inference"
	"github.com/spacesedan/newsnlp/internal/pipelines"
	"github.com/spacesedan/newsnlp/internal/sentiment"
	"github.com/spacesedan/newsnlp/internal/tokenizer"
)

// Models holds every handle the NLP service needs. It is immutable once
// Load returns.
type Models struct {
	Summarizer inference.SummaryService
	Classifier inference.Classifier

	SummarizerHealth inference.HealthChecker
	SentimentHealth  inference.HealthChecker

	huggingFace *clients.HuggingFaceClient
	closers     []io.Closer
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// Load constructs the tokenizer, generator and classifier selected by cfg.
// Anything already opened is released when a later step fails.
func Load(cfg config.ServerConfig) (*Models, error) {
	m := &Models{}

	tk, err := tokenizer.Load(cfg.Models.SummaryTokenizer, cfg.Models.TokenizerPath, cfg.Models.ModelDir, cfg.HuggingFace.APIToken)
	if err != nil {
		return nil, err
	}
	m.closers = append(m.closers, tk)

	var hf *clients.HuggingFaceClient
	remoteClient := func() *clients.HuggingFaceClient {
		if hf == nil {
			hf = clients.NewHuggingFaceClient(cfg.HuggingFace, cfg.Models.SummaryModel, cfg.Models.SentimentRemoteModel)
		}
		return hf
	}

	var generator inference.Generator
	switch cfg.Models.SummaryBackend {
	case config.SummaryBackendOpenAI:
		oa := clients.NewOpenAIClient(cfg.OpenAI)
		generator = oa
		m.SummarizerHealth = oa
	default:
		generator = remoteClient()
		m.SummarizerHealth = inference.HealthCheckFunc(remoteClient().SummarizerHealthCheck)
	}

	var summarizer inference.SummaryService = inference.NewSummarizer(tk, generator)
	if cfg.Valkey.Enabled() {
		cache, err := clients.NewValkeyClient(cfg.Valkey)
		if err != nil {
			slog.Warn("[Loader] Summary cache unavailable, continuing without it",
				slog.String("error", err.Error()))
		} else {
			m.closers = append(m.closers, closeFunc(func() error {
				cache.Close()
				return nil
			}))
			summarizer = inference.NewCachedSummarizer(summarizer, cache)
		}
	}
	m.Summarizer = summarizer

	switch cfg.Models.SentimentBackend {
	case config.SentimentBackendVader:
		vc := sentiment.NewVaderClassifier()
		m.Classifier = vc
		m.SentimentHealth = vc
	case config.SentimentBackendHuggingFace:
		m.Classifier = remoteClient()
		m.SentimentHealth = inference.HealthCheckFunc(remoteClient().AnalyzerHealthCheck)
	default:
		sp, err := pipelines.NewSentimentPipeline(cfg.Models.ModelDir, cfg.Models.SentimentModel, cfg.Models.OnnxLibraryPath)
		if err != nil {
			if closeErr := m.Close(); closeErr != nil {
				slog.Warn("[Loader] Failed to release models", slog.String("error", closeErr.Error()))
			}
			return nil, fmt.Errorf("failed to load sentiment model: %w", err)
		}
		m.closers = append(m.closers, sp)
		m.Classifier = sp
		m.SentimentHealth = sp
	}

	m.huggingFace = hf

	slog.Info("[Loader] Models loaded",
		slog.String("summary_backend", cfg.Models.SummaryBackend),
		slog.String("summary_model", cfg.Models.SummaryModel),
		slog.String("sentiment_backend", cfg.Models.SentimentBackend),
		slog.Bool("summary_cache", cfg.Valkey.Enabled()))

	return m, nil
}

// Close releases native handles in reverse order of creation.
func (m *Models) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}
