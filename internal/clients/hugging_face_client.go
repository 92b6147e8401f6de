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
	"strings"
	"time"

	"github.com/spacesedan/newsnlp/config"
	"github.com/spacesedan/newsnlp/internal/inference"
	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/spacesedan/newsnlp/internal/sentiment"
	"github.com/tidwall/gjson"
)

// HuggingFaceClient talks to the hosted inference API. It serves as the
// summary Generator and, optionally, as the sentiment Classifier. Each call
// makes exactly one request; failures go straight back to the caller.
type HuggingFaceClient struct {
	Client         *http.Client
	baseURL        string
	token          string
	summaryModel   string
	sentimentModel string
}

func NewHuggingFaceClient(cfg config.HuggingFaceConfig, summaryModel, sentimentModel string) *HuggingFaceClient {
	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.Duration("timeout", cfg.Timeout),
		slog.String("base_url", cfg.APIURL),
		slog.String("summary_model", summaryModel),
		slog.String("sentiment_model", sentimentModel))

	return &HuggingFaceClient{
		Client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.APIURL, "/"),
		token:          cfg.APIToken,
		summaryModel:   summaryModel,
		sentimentModel: sentimentModel,
	}
}

// Generate satisfies inference.Generator using the hosted summarization model.
func (h *HuggingFaceClient) Generate(ctx context.Context, text string, params inference.GenerationParams) (string, error) {
	slog.Info("[HuggingFaceClient] Requesting summary from summarization service")
	start := time.Now()

	body, err := h.postJSON(ctx, h.modelURL(h.summaryModel), models.SummaryRequest{
		Inputs: text,
		Parameters: models.SummaryParameters{
			MaxLength: params.MaxLength,
			MinLength: params.MinLength,
			DoSample:  params.DoSample,
		},
	})
	if err != nil {
		slog.Error("[HuggingFaceClient] Summary Request Failed",
			slog.Duration("elapsed", time.Since(start)))
		return "", err
	}

	summary, err := parseSummary(body)
	if err != nil {
		return "", err
	}

	slog.Info("[HuggingFaceClient] Summary request successful",
		slog.Duration("elapsed", time.Since(start)))

	return summary, nil
}

// Classify satisfies inference.Classifier using the hosted sentiment model.
func (h *HuggingFaceClient) Classify(ctx context.Context, text string) ([]models.SentimentLabel, error) {
	slog.Info("[HuggingFaceClient] Requesting sentiment analysis from sentiment analysis service")
	start := time.Now()

	body, err := h.postJSON(ctx, h.modelURL(h.sentimentModel), models.SentimentAnalysisRequest{Inputs: text})
	if err != nil {
		slog.Error("[HuggingFaceClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	labels, err := parseSentiment(body)
	if err != nil {
		return nil, err
	}

	slog.Info("[HuggingFaceClient] Sentiment Analysis request successful",
		slog.Duration("elapsed", time.Since(start)))

	return labels, nil
}

func (h *HuggingFaceClient) SummarizerHealthCheck(ctx context.Context) error {
	return h.ping(ctx, h.summaryModel)
}

func (h *HuggingFaceClient) AnalyzerHealthCheck(ctx context.Context) error {
	return h.ping(ctx, h.sentimentModel)
}

func (h *HuggingFaceClient) ping(ctx context.Context, model string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.modelURL(model), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	h.setHeaders(req)

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("health check returned status code %d", resp.StatusCode)
	}
	return nil
}

func (h *HuggingFaceClient) modelURL(model string) string {
	return h.baseURL + "/" + model
}

func (h *HuggingFaceClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", USER_AGENT)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
}

// helper function for posting data to the inference API
func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}) ([]byte, error) {
	body, err := json.Marshal(input)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to marshal input",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to build request",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	h.setHeaders(req)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Error("[HuggingFaceClient] Request failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))

		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to read response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("[HuggingFaceClient] Unexpected response status",
			slog.String("endpoint", endpoint),
			slog.Int("status_code", resp.StatusCode),
			getPreview(respBody))
		return nil, fmt.Errorf("inference API returned status code %d: %s", resp.StatusCode, apiErrorMessage(respBody))
	}

	return respBody, nil
}

// parseSummary accepts both the list form [{"summary_text": ...}] and a bare
// object returned by some deployments.
func parseSummary(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("failed to unmarshal response: invalid JSON")
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return "", fmt.Errorf("inference API error: %s", msg.String())
	}

	for _, path := range []string{"0.summary_text", "summary_text", "0.generated_text", "generated_text"} {
		if v := gjson.GetBytes(body, path); v.Exists() {
			return v.String(), nil
		}
	}

	return "", errors.New("summary missing from inference API response")
}

// parseSentiment accepts both [[{label, score}...]] and [{label, score}...].
func parseSentiment(body []byte) ([]models.SentimentLabel, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to unmarshal response: invalid JSON")
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return nil, fmt.Errorf("inference API error: %s", msg.String())
	}

	result := gjson.ParseBytes(body)
	if result.Get("0.0.label").Exists() {
		result = result.Get("0")
	}

	var labels []models.SentimentLabel
	for _, item := range result.Array() {
		label := item.Get("label")
		if !label.Exists() {
			continue
		}
		labels = append(labels, models.SentimentLabel{
			Label: label.String(),
			Score: item.Get("score").Float(),
		})
	}
	if len(labels) == 0 {
		return nil, errors.New("sentiment labels missing from inference API response")
	}

	return sentiment.TopLabel(labels), nil
}

func apiErrorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return msg.String()
	}
	return getPreview(body).Value.String()
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
