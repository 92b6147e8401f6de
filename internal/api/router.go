// Package api exposes the NLP service over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	MaxBodyBytes int64
	Metrics      http.Handler
	Observer     RequestObserver
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		RequestID(),
		AccessLog(cfg.Observer),
		gin.CustomRecovery(recovery),
	)

	r.NoRoute(notFound)
	r.NoMethod(methodNotAllowed)

	r.GET("/healthz", h.Healthz)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	nlp := r.Group("/", BodyLimit(cfg.MaxBodyBytes))
	nlp.POST("/summarize", h.Summarize)
	nlp.POST("/sentiment", h.Sentiment)

	return r
}
