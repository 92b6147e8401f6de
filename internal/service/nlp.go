// Package service holds the NLP service context shared by the HTTP handlers.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/newsnlp/internal/apperrors"
	"github.com/spacesedan/newsnlp/internal/inference"
	"github.com/spacesedan/newsnlp/internal/models"
)

const (
	TaskSummarization = "summarization"
	TaskSentiment     = "sentiment analysis"
)

// InferenceRecorder receives one observation per model call.
type InferenceRecorder interface {
	ObserveInference(task string, elapsed time.Duration, err error)
}

// NLP runs summarization and sentiment analysis against injected backends.
type NLP struct {
	summarizer inference.SummaryService
	classifier inference.Classifier
	recorder   InferenceRecorder
}

func NewNLP(summarizer inference.SummaryService, classifier inference.Classifier, recorder InferenceRecorder) *NLP {
	return &NLP{
		summarizer: summarizer,
		classifier: classifier,
		recorder:   recorder,
	}
}

// Summarize returns a summary of content. Failures come back as
// ModelFailure errors.
func (n *NLP) Summarize(ctx context.Context, content string) (models.SummaryResult, error) {
	start := time.Now()
	summary, err := n.summarizer.Summarize(ctx, content)
	n.observe(TaskSummarization, start, err)
	if err != nil {
		slog.Error("[NLP] Summarization failed", slog.String("error", err.Error()))
		return models.SummaryResult{}, apperrors.ModelFailure(TaskSummarization, err)
	}

	return models.SummaryResult{Summary: summary}, nil
}

// AnalyzeSentiment classifies content as-is.
func (n *NLP) AnalyzeSentiment(ctx context.Context, content string) (models.SentimentResult, error) {
	start := time.Now()
	labels, err := n.classifier.Classify(ctx, content)
	n.observe(TaskSentiment, start, err)
	if err != nil {
		slog.Error("[NLP] Sentiment analysis failed", slog.String("error", err.Error()))
		return models.SentimentResult{}, apperrors.ModelFailure(TaskSentiment, err)
	}

	if labels == nil {
		labels = []models.SentimentLabel{}
	}
	return models.SentimentResult{Sentiment: labels}, nil
}

func (n *NLP) observe(task string, start time.Time, err error) {
	if n.recorder != nil {
		n.recorder.ObserveInference(task, time.Since(start), err)
	}
}
