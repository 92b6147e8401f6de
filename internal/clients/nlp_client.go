package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/tidwall/gjson"
)

// NLPClient calls the summarize and sentiment endpoints of a running NLP
// server.
type NLPClient struct {
	Client  *http.Client
	baseURL string
}

func NewNLPClient(baseURL string, timeout time.Duration) *NLPClient {
	return &NLPClient{
		Client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *NLPClient) Summarize(ctx context.Context, content string) (string, error) {
	var result models.SummaryResult
	if err := n.post(ctx, "/summarize", content, &result); err != nil {
		return "", err
	}
	return result.Summary, nil
}

func (n *NLPClient) Sentiment(ctx context.Context, content string) ([]models.SentimentLabel, error) {
	var result models.SentimentResult
	if err := n.post(ctx, "/sentiment", content, &result); err != nil {
		return nil, err
	}
	return result.Sentiment, nil
}

func (n *NLPClient) post(ctx context.Context, path, content string, out any) error {
	body, err := json.Marshal(models.NewsContent{Content: &content})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	start := time.Now()
	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(respBody, "message").String()
		if msg == "" {
			msg = getPreview(respBody).Value.String()
		}
		return fmt.Errorf("%s returned status code %d: %s", path, resp.StatusCode, msg)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", path, err)
	}

	slog.Debug("[NLPClient] Request successful",
		slog.String("path", path),
		slog.Duration("elapsed", time.Since(start)))

	return nil
}
