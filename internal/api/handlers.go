package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/newsnlp/internal/apperrors"
	"github.com/spacesedan/newsnlp/internal/models"
)

// NLPService is the service context the handlers run against.
type NLPService interface {
	Summarize(ctx context.Context, content string) (models.SummaryResult, error)
	AnalyzeSentiment(ctx context.Context, content string) (models.SentimentResult, error)
}

// HealthReporter exposes the last known backend health.
type HealthReporter interface {
	SummarizerHealthy() bool
	AnalyzerHealthy() bool
}

type Handler struct {
	nlp    NLPService
	health HealthReporter
}

func NewHandler(nlp NLPService, health HealthReporter) *Handler {
	return &Handler{nlp: nlp, health: health}
}

func (h *Handler) Summarize(c *gin.Context) {
	content, err := bindContent(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.nlp.Summarize(c.Request.Context(), content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Sentiment(c *gin.Context) {
	content, err := bindContent(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.nlp.AnalyzeSentiment(c.Request.Context(), content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Healthz(c *gin.Context) {
	resp := models.HealthResponse{Summarizer: true, Sentiment: true}
	if h.health != nil {
		resp.Summarizer = h.health.SummarizerHealthy()
		resp.Sentiment = h.health.AnalyzerHealthy()
	}
	resp.OK = resp.Summarizer && resp.Sentiment

	status := http.StatusOK
	if !resp.OK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func bindContent(c *gin.Context) (string, error) {
	var req models.NewsContent
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", apperrors.InputTooLarge(err)
		}
		return "", apperrors.Validation(err)
	}
	return req.Text(), nil
}
