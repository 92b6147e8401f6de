package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/spacesedan/newsnlp/config"
	"github.com/spacesedan/newsnlp/internal/inference"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests

	summarySystemPrompt = `Summarize the news article in plain prose.
Keep the key facts: who, what, when, numbers and names.
Stay neutral and objective. Do not add information that is not in the article.
Write at least %d and at most %d tokens. Output only the summary.`
)

// OpenAIClient is an alternative summary Generator backed by chat completions.
type OpenAIClient struct {
	Client openai.Client
	model  string
}

func NewOpenAIClient(cfg config.OpenAIConfig, opts ...option.RequestOption) *OpenAIClient {
	httpClient := &http.Client{
		Timeout: openAIRequestTimeout,
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}, opts...)

	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", openAIRequestTimeout),
		slog.String("model", cfg.Model))

	return &OpenAIClient{
		Client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (o *OpenAIClient) Generate(ctx context.Context, text string, params inference.GenerationParams) (string, error) {
	start := time.Now()

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(summarySystemPrompt, params.MinLength, params.MaxLength)),
			openai.UserMessage(text),
		},
		MaxCompletionTokens: openai.Int(int64(params.MaxLength)),
	}
	if !params.DoSample {
		req.Temperature = openai.Float(0)
	}

	resp, err := o.Client.Chat.Completions.New(ctx, req)
	if err != nil {
		slog.Error("[OpenAIClient] Summary request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion choices are missing")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("chat completion choice message content is missing")
	}

	slog.Info("[OpenAIClient] Summary request successful",
		slog.Duration("elapsed", time.Since(start)))

	return summary, nil
}

// HealthCheck lists the configured model.
func (o *OpenAIClient) HealthCheck(ctx context.Context) error {
	if _, err := o.Client.Models.Get(ctx, o.model); err != nil {
		return fmt.Errorf("openai model %q unavailable: %w", o.model, err)
	}
	return nil
}
