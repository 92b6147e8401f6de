package inference

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

const summaryCacheKeyPrefix = "summary:"

// SummaryCache stores finished summaries by key.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CachedSummarizer serves repeated content from a SummaryCache. Cache errors
// are logged and bypassed.
type CachedSummarizer struct {
	next  SummaryService
	cache SummaryCache
}

func NewCachedSummarizer(next SummaryService, cache SummaryCache) *CachedSummarizer {
	return &CachedSummarizer{next: next, cache: cache}
}

func (c *CachedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	key := SummaryCacheKey(text)

	cached, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("[SummaryCache] Lookup failed, bypassing cache",
			slog.String("error", err.Error()))
	} else if ok {
		slog.Debug("[SummaryCache] Cache hit", slog.String("key", key))
		return cached, nil
	}

	summary, err := c.next.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	if summary != "" {
		if err := c.cache.Set(ctx, key, summary); err != nil {
			slog.Warn("[SummaryCache] Store failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
	}

	return summary, nil
}

// SummaryCacheKey derives the cache key for content.
func SummaryCacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return summaryCacheKeyPrefix + hex.EncodeToString(sum[:])
}
