// Package news fetches articles and runs them through the NLP service.
package news

import (
	"context"

	"github.com/spacesedan/newsnlp/internal/models"
)

// Source yields the current batch of articles from one provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Article, error)
}

// Analyzer is the NLP service as seen from the worker.
type Analyzer interface {
	Summarize(ctx context.Context, content string) (string, error)
	Sentiment(ctx context.Context, content string) ([]models.SentimentLabel, error)
}

// Publisher delivers a processed article downstream.
type Publisher interface {
	Publish(ctx context.Context, article models.ProcessedArticle) error
}
