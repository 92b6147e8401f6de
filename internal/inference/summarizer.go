package inference

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Summarizer runs the encode, generate, decode flow with a bounded input and
// a bounded output.
type Summarizer struct {
	tokenizer Tokenizer
	generator Generator
	params    GenerationParams
	maxInput  int
}

func NewSummarizer(tokenizer Tokenizer, generator Generator) *Summarizer {
	return &Summarizer{
		tokenizer: tokenizer,
		generator: generator,
		params:    DefaultGenerationParams,
		maxInput:  MaxInputTokens,
	}
}

// Summarize returns a summary of text. Whitespace-only input yields an empty
// summary without touching the model.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	start := time.Now()

	input, truncated, err := s.truncate(text)
	if err != nil {
		return "", err
	}
	if truncated {
		slog.Debug("[Summarizer] Input truncated",
			slog.Int("max_tokens", s.maxInput),
			slog.Int("original_chars", len(text)),
			slog.Int("truncated_chars", len(input)))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	output, err := s.generator.Generate(ctx, input, s.params)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	summary, err := s.clamp(output)
	if err != nil {
		return "", err
	}

	slog.Debug("[Summarizer] Summary generated",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("summary_chars", len(summary)))

	return summary, nil
}

// truncate keeps the first maxInput-1 ids plus the trailing end-of-sequence
// id, matching tokenizer-side truncation, then decodes back to text.
func (s *Summarizer) truncate(text string) (string, bool, error) {
	ids, err := s.tokenizer.Encode(text, true)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode input: %w", err)
	}
	if len(ids) <= s.maxInput {
		return text, false, nil
	}

	kept := make([]uint32, 0, s.maxInput)
	kept = append(kept, ids[:s.maxInput-1]...)
	kept = append(kept, ids[len(ids)-1])

	decoded, err := s.tokenizer.Decode(kept)
	if err != nil {
		return "", false, fmt.Errorf("failed to decode truncated input: %w", err)
	}

	return decoded, true, nil
}

// clamp enforces the output bound regardless of what the backend returned.
func (s *Summarizer) clamp(output string) (string, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return "", nil
	}

	ids, err := s.tokenizer.Encode(output, false)
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}
	if len(ids) <= s.params.MaxLength {
		return output, nil
	}

	decoded, err := s.tokenizer.Decode(ids[:s.params.MaxLength])
	if err != nil {
		return "", fmt.Errorf("failed to decode summary: %w", err)
	}

	return strings.TrimSpace(decoded), nil
}
