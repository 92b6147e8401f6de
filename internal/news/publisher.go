package news

import (
	"context"
	"log/slog"

	"github.com/spacesedan/newsnlp/internal/models"
)

// LogPublisher writes processed articles to the structured log.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, article models.ProcessedArticle) error {
	attrs := []any{
		slog.String("title", article.Title),
		slog.String("url", article.URL),
		slog.String("source", article.Source),
		slog.String("summary", article.Summary),
	}
	if len(article.Sentiment) > 0 {
		attrs = append(attrs,
			slog.String("sentiment", article.Sentiment[0].Label),
			slog.Float64("score", article.Sentiment[0].Score))
	}
	if article.SentimentError != "" {
		attrs = append(attrs, slog.String("sentiment_error", article.SentimentError))
	}

	slog.Info("[NewsProcessor] Processed news", attrs...)
	return nil
}
