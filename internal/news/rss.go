package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/spacesedan/newsnlp/internal/clients"
	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/spacesedan/newsnlp/internal/sentiment"
)

const rssClientTimeout = 20 * time.Second

// RSSSource reads articles from a fixed list of RSS or Atom feeds.
type RSSSource struct {
	parser  *gofeed.Parser
	feeds   []string
	perFeed int
}

func NewRSSSource(feeds []string, perFeed int) *RSSSource {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: rssClientTimeout}
	parser.UserAgent = clients.USER_AGENT

	return &RSSSource{
		parser:  parser,
		feeds:   feeds,
		perFeed: perFeed,
	}
}

func (r *RSSSource) Name() string {
	return "rss"
}

// Fetch parses every feed. A failing feed is skipped; an error is returned
// only when all of them fail.
func (r *RSSSource) Fetch(ctx context.Context) ([]models.Article, error) {
	var (
		articles []models.Article
		errs     []error
	)

	for _, url := range r.feeds {
		feed, err := r.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			slog.Warn("[RSSSource] Failed to parse feed",
				slog.String("feed", url),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("parse feed %s: %w", url, err))
			continue
		}

		articles = append(articles, feedArticles(feed, r.perFeed)...)
	}

	if len(errs) > 0 && len(errs) == len(r.feeds) {
		return nil, errors.Join(errs...)
	}

	slog.Info("[RSSSource] Fetched articles",
		slog.Int("feeds", len(r.feeds)),
		slog.Int("count", len(articles)))

	return articles, nil
}

func feedArticles(feed *gofeed.Feed, limit int) []models.Article {
	var articles []models.Article
	for _, item := range feed.Items {
		if limit > 0 && len(articles) >= limit {
			break
		}
		if item.Link == "" {
			continue
		}

		body := item.Content
		if body == "" {
			body = item.Description
		}

		article := models.Article{
			URI:    item.GUID,
			URL:    item.Link,
			Title:  strings.TrimSpace(item.Title),
			Body:   sentiment.RemoveLinks(sentiment.HTMLToText(body)),
			Source: feed.Title,
		}
		if item.PublishedParsed != nil {
			article.PublishedAt = item.PublishedParsed.UTC()
		}
		articles = append(articles, article)
	}
	return articles
}
