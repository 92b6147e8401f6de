package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/newsnlp/internal/models"
)

const SummaryFallback = "Error summarizing content."

// Processor fetches from every source and annotates each article with a
// summary of its body and the sentiment of its title.
type Processor struct {
	sources    []Source
	analyzer   Analyzer
	publishers []Publisher
	now        func() time.Time
}

func NewProcessor(sources []Source, analyzer Analyzer, publishers ...Publisher) *Processor {
	return &Processor{
		sources:    sources,
		analyzer:   analyzer,
		publishers: publishers,
		now:        time.Now,
	}
}

// Run performs one fetch-and-process cycle and returns how many articles were
// processed. Source and per-article failures are logged and never abort it.
func (p *Processor) Run(ctx context.Context) int {
	start := time.Now()

	var articles []models.Article
	for _, src := range p.sources {
		fetched, err := src.Fetch(ctx)
		if err != nil {
			slog.Error("[NewsProcessor] Failed to fetch articles",
				slog.String("source", src.Name()),
				slog.String("error", err.Error()))
			continue
		}
		articles = append(articles, fetched...)
	}

	if len(articles) == 0 {
		slog.Info("[NewsProcessor] No articles fetched")
		return 0
	}

	processed := 0
	for _, article := range articles {
		if ctx.Err() != nil {
			slog.Warn("[NewsProcessor] Run cancelled",
				slog.Int("processed", processed),
				slog.Int("remaining", len(articles)-processed),
				slog.String("error", ctx.Err().Error()))
			break
		}

		result := p.Process(ctx, article)
		p.publish(ctx, result)
		processed++
	}

	slog.Info("[NewsProcessor] Run complete",
		slog.Int("processed", processed),
		slog.Duration("elapsed", time.Since(start)))

	return processed
}

// Process annotates a single article, substituting fallbacks on failure.
func (p *Processor) Process(ctx context.Context, article models.Article) models.ProcessedArticle {
	slog.Info("[NewsProcessor] Processing article", slog.String("title", article.Title))

	result := models.ProcessedArticle{
		Title:       article.Title,
		URL:         article.URL,
		Source:      article.Source,
		PublishedAt: article.PublishedAt,
	}

	summary, err := p.analyzer.Summarize(ctx, article.Body)
	if err != nil {
		slog.Error("[NewsProcessor] Error summarizing news",
			slog.String("url", article.URL),
			slog.String("error", err.Error()))
		summary = SummaryFallback
	}
	result.Summary = summary

	labels, err := p.analyzer.Sentiment(ctx, article.Title)
	if err != nil {
		slog.Error("[NewsProcessor] Error analyzing sentiment",
			slog.String("url", article.URL),
			slog.String("error", err.Error()))
		result.SentimentError = err.Error()
	} else {
		result.Sentiment = labels
	}

	result.ProcessedAt = p.now().UTC()
	return result
}

func (p *Processor) publish(ctx context.Context, article models.ProcessedArticle) {
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, article); err != nil {
			slog.Error("[NewsProcessor] Failed to publish article",
				slog.String("key", article.Key()),
				slog.String("error", err.Error()))
		}
	}
}
