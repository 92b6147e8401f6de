package models

import "time"

// Article is a news item fetched by the news worker, independent of source.
type Article struct {
	URI         string    `json:"uri"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// ProcessedArticle is an article with its summary and title sentiment.
type ProcessedArticle struct {
	Title          string           `json:"title"`
	URL            string           `json:"url"`
	Source         string           `json:"source"`
	Summary        string           `json:"summary"`
	Sentiment      []SentimentLabel `json:"sentiment"`
	SentimentError string           `json:"sentiment_error,omitempty"`
	PublishedAt    time.Time        `json:"published_at"`
	ProcessedAt    time.Time        `json:"processed_at"`
}

// Key is the Kafka message key for the article.
func (p ProcessedArticle) Key() string {
	if p.URL != "" {
		return p.URL
	}
	return p.Title
}
