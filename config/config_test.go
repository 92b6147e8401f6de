package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, int64(5<<20), cfg.MaxBodyBytes)
	assert.Equal(t, SummaryBackendHuggingFace, cfg.Models.SummaryBackend)
	assert.Equal(t, SentimentBackendHugot, cfg.Models.SentimentBackend)
	assert.Equal(t, "facebook/bart-large-cnn", cfg.Models.SummaryTokenizer)
	assert.Equal(t, 60*time.Second, cfg.HuggingFace.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Valkey.SummaryTTL)
	assert.False(t, cfg.Valkey.Enabled())
}

func TestLoadServerConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("SENTIMENT_BACKEND", "bert")

	_, err := LoadServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SENTIMENT_BACKEND")
}

func TestLoadServerConfigOpenAIRequiresKey(t *testing.T) {
	t.Setenv("SUMMARY_BACKEND", SummaryBackendOpenAI)
	t.Setenv("OPENAI_API_KEY", "")

	_, err := LoadServerConfig()
	require.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
}

func TestLoadWorkerConfig(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("NEWS_FEEDS", "")

	_, err := LoadWorkerConfig()
	require.Error(t, err)

	t.Setenv("NEWS_FEEDS", "https://a.example/rss,https://b.example/rss")
	t.Setenv("KAFKA_BROKER", "localhost:29092")

	cfg, err := LoadWorkerConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/rss"}, cfg.Feeds)
	assert.Equal(t, []string{"stocks", "finance", "market", "economy"}, cfg.Keywords)
	assert.Equal(t, "0 0 * * *", cfg.Schedule)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "news-analysis", cfg.Kafka.ResultsTopic)
}
