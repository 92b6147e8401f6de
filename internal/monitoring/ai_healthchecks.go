package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/newsnlp/internal/inference"
)

const (
	BackendSummarizer = "summarizer"
	BackendSentiment  = "sentiment"

	checkTimeout = 10 * time.Second
)

// HealthMonitor checks the summary and sentiment backends on an interval and
// keeps the last result for /healthz. It never gates requests.
type HealthMonitor struct {
	summarizer inference.HealthChecker
	analyzer   inference.HealthChecker
	interval   time.Duration
	metrics    *Metrics

	summarizerHealthy atomic.Bool
	analyzerHealthy   atomic.Bool
}

// NewHealthMonitor starts with both backends reported healthy since model
// loading already succeeded.
func NewHealthMonitor(summarizer, analyzer inference.HealthChecker, interval time.Duration, metrics *Metrics) *HealthMonitor {
	h := &HealthMonitor{
		summarizer: summarizer,
		analyzer:   analyzer,
		interval:   interval,
		metrics:    metrics,
	}
	h.summarizerHealthy.Store(true)
	h.analyzerHealthy.Store(true)
	h.publish()
	return h
}

// Run checks the backends until ctx is cancelled.
func (h *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.CheckNow(ctx)
		}
	}
}

// CheckNow checks each backend once.
func (h *HealthMonitor) CheckNow(ctx context.Context) {
	h.summarizerHealthy.Store(checkBackend(ctx, BackendSummarizer, h.summarizer))
	h.analyzerHealthy.Store(checkBackend(ctx, BackendSentiment, h.analyzer))
	h.publish()
}

func (h *HealthMonitor) SummarizerHealthy() bool {
	return h.summarizerHealthy.Load()
}

func (h *HealthMonitor) AnalyzerHealthy() bool {
	return h.analyzerHealthy.Load()
}

func (h *HealthMonitor) publish() {
	if h.metrics == nil {
		return
	}
	h.metrics.SetBackendHealthy(BackendSummarizer, h.SummarizerHealthy())
	h.metrics.SetBackendHealthy(BackendSentiment, h.AnalyzerHealthy())
}

func checkBackend(ctx context.Context, backend string, checker inference.HealthChecker) bool {
	if checker == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := checker.HealthCheck(ctx); err != nil {
		slog.Warn("[HealthCheck] Backend is unhealthy",
			slog.String("backend", backend),
			slog.String("error", err.Error()))
		return false
	}
	return true
}
