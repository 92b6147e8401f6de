package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SummaryBackendHuggingFace = "huggingface"
	SummaryBackendOpenAI      = "openai"

	SentimentBackendHugot       = "hugot"
	SentimentBackendVader       = "vader"
	SentimentBackendHuggingFace = "huggingface"
)

type HuggingFaceConfig struct {
	APIURL   string        `env:"HF_API_URL"   envDefault:"https://router.huggingface.co/hf-inference/models"`
	APIToken string        `env:"HF_API_TOKEN"`
	Timeout  time.Duration `env:"HF_TIMEOUT"   envDefault:"60s"`
}

type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
	Model  string `env:"OPENAI_MODEL"   envDefault:"gpt-4.1-mini"`
}

type ValkeyConfig struct {
	InitAddress string        `env:"VALKEY_INIT_ADDRESS"`
	Password    string        `env:"VALKEY_PASSWORD"`
	TLS         bool          `env:"VALKEY_TLS"`
	SummaryTTL  time.Duration `env:"SUMMARY_CACHE_TTL"   envDefault:"24h"`
}

// Enabled reports whether a Valkey address was configured.
func (c ValkeyConfig) Enabled() bool {
	return c.InitAddress != ""
}

// ModelConfig selects the inference backends and where their weights come from.
type ModelConfig struct {
	SummaryBackend       string `env:"SUMMARY_BACKEND"        envDefault:"huggingface"`
	SummaryModel         string `env:"SUMMARY_MODEL"          envDefault:"facebook/bart-large-cnn"`
	SummaryTokenizer     string `env:"SUMMARY_TOKENIZER"      envDefault:"facebook/bart-large-cnn"`
	TokenizerPath        string `env:"TOKENIZER_PATH"`
	SentimentBackend     string `env:"SENTIMENT_BACKEND"      envDefault:"hugot"`
	SentimentModel       string `env:"SENTIMENT_MODEL"        envDefault:"KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"`
	SentimentRemoteModel string `env:"SENTIMENT_REMOTE_MODEL" envDefault:"distilbert/distilbert-base-uncased-finetuned-sst-2-english"`
	ModelDir             string `env:"MODEL_DIR"              envDefault:"./models"`
	OnnxLibraryPath      string `env:"ONNX_LIBRARY_PATH"`
}

type ServerConfig struct {
	Addr                string        `env:"HTTP_ADDR"            envDefault:":8000"`
	LogLevel            string        `env:"LOG_LEVEL"            envDefault:"info"`
	MaxBodyBytes        int64         `env:"MAX_BODY_BYTES"       envDefault:"5242880"`
	HealthCheckInterval time.Duration `env:"HEALTHCHECK_INTERVAL" envDefault:"15s"`

	Models      ModelConfig
	HuggingFace HuggingFaceConfig
	OpenAI      OpenAIConfig
	Valkey      ValkeyConfig
}

type KafkaConfig struct {
	Broker       string `env:"KAFKA_BROKER"`
	ResultsTopic string `env:"KAFKA_RESULTS_TOPIC" envDefault:"news-analysis"`
}

// Enabled reports whether a broker was configured.
func (c KafkaConfig) Enabled() bool {
	return c.Broker != ""
}

type WorkerConfig struct {
	LogLevel         string        `env:"LOG_LEVEL"          envDefault:"info"`
	NLPAPIURL        string        `env:"NLP_API_URL"        envDefault:"http://localhost:8000"`
	NLPTimeout       time.Duration `env:"NLP_TIMEOUT"        envDefault:"120s"`
	NewsAPIKey       string        `env:"NEWS_API_KEY"`
	EventRegistryURL string        `env:"EVENT_REGISTRY_URL" envDefault:"https://eventregistry.org/api/v1/article/getArticles"`
	Keywords         []string      `env:"NEWS_KEYWORDS"      envDefault:"stocks,finance,market,economy"`
	ArticleCount     int           `env:"NEWS_ARTICLE_COUNT" envDefault:"10"`
	Feeds            []string      `env:"NEWS_FEEDS"`
	Schedule         string        `env:"NEWS_SCHEDULE"      envDefault:"0 0 * * *"`
	RunTimeout       time.Duration `env:"NEWS_RUN_TIMEOUT"   envDefault:"15m"`

	Kafka KafkaConfig
}

func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.Models.validate(); err != nil {
		return cfg, err
	}
	if cfg.Models.SummaryBackend == SummaryBackendOpenAI && cfg.OpenAI.APIKey == "" {
		return cfg, fmt.Errorf("OPENAI_API_KEY is required when SUMMARY_BACKEND=%s", SummaryBackendOpenAI)
	}
	if cfg.MaxBodyBytes <= 0 {
		return cfg, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}

func LoadWorkerConfig() (WorkerConfig, error) {
	var cfg WorkerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse worker config: %w", err)
	}
	if cfg.NewsAPIKey == "" && len(cfg.Feeds) == 0 {
		return cfg, fmt.Errorf("either NEWS_API_KEY or NEWS_FEEDS must be set")
	}
	return cfg, nil
}

func (c ModelConfig) validate() error {
	switch c.SummaryBackend {
	case SummaryBackendHuggingFace, SummaryBackendOpenAI:
	default:
		return fmt.Errorf("unsupported SUMMARY_BACKEND %q", c.SummaryBackend)
	}

	switch c.SentimentBackend {
	case SentimentBackendHugot, SentimentBackendVader, SentimentBackendHuggingFace:
	default:
		return fmt.Errorf("unsupported SENTIMENT_BACKEND %q", c.SentimentBackend)
	}

	return nil
}
