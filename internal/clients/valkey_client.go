package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/newsnlp/config"
	"github.com/valkey-io/valkey-go"
)

const valkeyRetries = 3

// ValkeyClient is the optional summary cache.
type ValkeyClient struct {
	Client valkey.Client
	cfg    config.ValkeyConfig
	mu     sync.RWMutex
}

func NewValkeyClient(cfg config.ValkeyConfig) (*ValkeyClient, error) {
	client, err := connectValkey(cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", cfg.InitAddress),
		slog.Duration("summary_ttl", cfg.SummaryTTL))

	return &ValkeyClient{Client: client, cfg: cfg}, nil
}

func connectValkey(cfg config.ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.InitAddress,
		},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
		DisableCache:     true,
	}

	if cfg.TLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	return client, nil
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.Client
}

// recreateClient replaces failed with a fresh connection and reports whether
// it did. Callers that saw the same failed client share one replacement.
func (vc *ValkeyClient) recreateClient(failed valkey.Client) bool {
	if vc.client() != failed {
		return false
	}

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.cfg)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed",
			slog.String("error", err.Error()))
		return false
	}

	vc.mu.Lock()
	if vc.Client != failed {
		vc.mu.Unlock()
		client.Close()
		return false
	}
	vc.Client = client
	vc.mu.Unlock()

	failed.Close()
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
	return true
}

func (vc *ValkeyClient) Close() {
	vc.client().Close()
}

// Get satisfies inference.SummaryCache.
func (vc *ValkeyClient) Get(ctx context.Context, key string) (string, bool, error) {
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(key).Build()
	}, valkeyRetries)

	value, err := res.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

// Set satisfies inference.SummaryCache; entries expire after the configured TTL.
func (vc *ValkeyClient) Set(ctx context.Context, key, value string) error {
	ttl := int64(vc.cfg.SummaryTTL.Seconds())
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Set().Key(key).Value(value).ExSeconds(ttl).Build()
	}, valkeyRetries)

	if err := res.Error(); err != nil {
		return err
	}

	slog.Debug("[ValkeyClient] Stored summary", slog.String("key", key))
	return nil
}

// HealthCheck pings the server.
func (vc *ValkeyClient) HealthCheck(ctx context.Context) error {
	client := vc.client()
	return client.Do(ctx, client.B().Ping().Build()).Error()
}

// DoWithRetry rebuilds the command on every attempt since completed commands
// are recycled after use and may belong to a replaced client.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		client := vc.client()
		result = client.Do(ctx, build(client))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if isConnectionError(err) {
			vc.recreateClient(client)
		}

		select {
		case <-ctx.Done():
			return result
		case <-time.After(250 * time.Millisecond):
		}
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
