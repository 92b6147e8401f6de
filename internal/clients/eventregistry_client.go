package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/newsnlp/config"
	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/tidwall/gjson"
)

const (
	eventRegistryPaywallGroup = "paywall/paywalled_sources"
	eventRegistryTimeLayout   = "2006-01-02T15:04:05Z"
)

// EventRegistryClient fetches the newest articles matching a keyword set.
type EventRegistryClient struct {
	Client       *http.Client
	APIKey       string
	endpoint     string
	keywords     []string
	articleCount int
	maxRetries   int
	backoff      time.Duration
}

func NewEventRegistryClient(cfg config.WorkerConfig) *EventRegistryClient {
	return &EventRegistryClient{
		Client:       &http.Client{Timeout: 30 * time.Second},
		APIKey:       cfg.NewsAPIKey,
		endpoint:     cfg.EventRegistryURL,
		keywords:     cfg.Keywords,
		articleCount: cfg.ArticleCount,
		maxRetries:   MAX_RETRIES,
		backoff:      INITIAL_BACKOFF,
	}
}

func (e *EventRegistryClient) Name() string {
	return "eventregistry"
}

// Fetch returns the latest English news and press-release articles, newest
// first, skipping paywalled sources.
func (e *EventRegistryClient) Fetch(ctx context.Context) ([]models.Article, error) {
	if e.APIKey == "" {
		slog.Error("[EventRegistryClient] API key is missing")
		return nil, errors.New("[EventRegistryClient] API key is missing")
	}

	payload, err := json.Marshal(models.EventRegistryArticlesRequest{
		Action:               "getArticles",
		Keyword:              e.keywords,
		Lang:                 []string{"eng"},
		KeywordLoc:           "body,title",
		IgnoreSourceGroupURI: eventRegistryPaywallGroup,
		ArticlesPage:         1,
		ArticlesCount:        e.articleCount,
		ArticlesSortBy:       "date",
		ArticlesSortByAsc:    false,
		DataType:             []string{"news", "pr"},
		ResultType:           "articles",
		APIKey:               e.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	backoff := e.backoff

	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		slog.Info("[EventRegistryClient] Fetching articles", slog.Int("attempt", attempt))
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)

		res, err := e.Client.Do(req)
		if err != nil {
			slog.Error("[EventRegistryClient] Request failed", slog.String("error", err.Error()))
			lastErr = err
		} else {
			body, readErr := io.ReadAll(res.Body)
			res.Body.Close()

			switch {
			case res.StatusCode == http.StatusOK:
				if readErr != nil {
					slog.Error("[EventRegistryClient] Failed to read response body", slog.String("error", readErr.Error()))
					return nil, readErr
				}
				articles, err := parseEventRegistryArticles(body)
				if err != nil {
					slog.Error("[EventRegistryClient] Failed to parse JSON response", slog.String("error", err.Error()))
					return nil, err
				}
				slog.Info("[EventRegistryClient] Successfully fetched articles", slog.Int("count", len(articles)))
				return articles, nil
			case res.StatusCode == http.StatusBadRequest:
				slog.Warn("[EventRegistryClient] Bad request: check query parameters", getPreview(body))
				return nil, errors.New("[EventRegistryClient] Bad request: check query parameters")
			case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusForbidden:
				slog.Error("[EventRegistryClient] Invalid API Key, check credentials")
				return nil, errors.New("[EventRegistryClient] Invalid API Key, check credentials")
			case res.StatusCode == http.StatusTooManyRequests, res.StatusCode >= 500:
				slog.Warn("[EventRegistryClient] Retryable response",
					slog.Int("statusCode", res.StatusCode),
					slog.Duration("backoff", backoff), slog.Int("attempt", attempt))
				lastErr = fmt.Errorf("[EventRegistryClient] status code %d", res.StatusCode)
			default:
				slog.Warn("[EventRegistryClient] Unexpected Response", slog.Int("statusCode", res.StatusCode))
				return nil, fmt.Errorf("[EventRegistryClient] Unexpected status code %d", res.StatusCode)
			}
		}

		if attempt == e.maxRetries {
			slog.Error("[EventRegistryClient] Failed after max retries")
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return nil, fmt.Errorf("[EventRegistryClient] failed after max retries: %w", lastErr)
}

func parseEventRegistryArticles(body []byte) ([]models.Article, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON")
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return nil, fmt.Errorf("event registry error: %s", msg.String())
	}

	results := gjson.GetBytes(body, "articles.results")
	if !results.Exists() {
		return nil, errors.New("articles.results missing from response")
	}

	var articles []models.Article
	for _, item := range results.Array() {
		article := models.Article{
			URI:    item.Get("uri").String(),
			URL:    item.Get("url").String(),
			Title:  item.Get("title").String(),
			Body:   item.Get("body").String(),
			Source: item.Get("source.title").String(),
		}
		if ts := item.Get("dateTimePub").String(); ts != "" {
			if t, err := time.Parse(eventRegistryTimeLayout, ts); err == nil {
				article.PublishedAt = t
			}
		}
		articles = append(articles, article)
	}

	return articles, nil
}
