// Package inference holds the model-facing contracts used by the NLP service
// and the summarization flow built on top of them.
package inference

import (
	"context"

	"github.com/spacesedan/newsnlp/internal/models"
)

const (
	MaxInputTokens   = 1024
	MaxSummaryTokens = 130
	MinSummaryTokens = 30
)

// Tokenizer converts text to and from the id sequence the summary model uses.
type Tokenizer interface {
	// Encode returns token ids, including special tokens when addSpecial is set.
	Encode(text string, addSpecial bool) ([]uint32, error)
	// Decode returns text for ids with special tokens stripped.
	Decode(ids []uint32) (string, error)
}

// GenerationParams are the fixed generation bounds for a summary.
type GenerationParams struct {
	MaxLength int
	MinLength int
	DoSample  bool
}

// DefaultGenerationParams are deterministic with 30..130 output tokens.
var DefaultGenerationParams = GenerationParams{
	MaxLength: MaxSummaryTokens,
	MinLength: MinSummaryTokens,
	DoSample:  false,
}

// Generator produces a summary for already-truncated input text.
type Generator interface {
	Generate(ctx context.Context, text string, params GenerationParams) (string, error)
}

// Classifier assigns sentiment labels to text.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]models.SentimentLabel, error)
}

// SummaryService is what the HTTP layer needs from a summarizer.
type SummaryService interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// HealthChecker is implemented by backends that can report their health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckFunc adapts a plain function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) HealthCheck(ctx context.Context) error {
	return f(ctx)
}
