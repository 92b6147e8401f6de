package kafka_client

import "time"

const (
	KAFKA_TOPIC_NEWS_ANALYSIS = "news-analysis" // processed articles with summary and sentiment
)

const (
	MAX_RETRIES      = 3
	RETRY_DELAY      = 2 * time.Second
	FLUSH_TIMEOUT_MS = 5000
)
