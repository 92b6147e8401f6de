package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/newsnlp/internal/apperrors"
	"github.com/spacesedan/newsnlp/internal/models"
)

// respondError maps err onto the {"message": ...} envelope. Only this
// function decides status codes.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	status := apperrors.HTTPStatus(appErr)

	_ = c.Error(appErr)

	attrs := []any{
		slog.String("request_id", requestID(c)),
		slog.String("kind", string(appErr.Kind)),
		slog.Int("status", status),
		slog.String("error", appErr.Error()),
	}
	if status >= http.StatusInternalServerError {
		slog.Error("[API] Request failed", attrs...)
	} else {
		slog.Warn("[API] Request rejected", attrs...)
	}

	c.AbortWithStatusJSON(status, models.ErrorResponse{Message: appErr.Error()})
}

func notFound(c *gin.Context) {
	respondError(c, apperrors.HTTP(http.StatusNotFound, http.StatusText(http.StatusNotFound)))
}

func methodNotAllowed(c *gin.Context) {
	respondError(c, apperrors.HTTP(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)))
}

func recovery(c *gin.Context, recovered any) {
	respondError(c, apperrors.Internal(fmt.Errorf("%v", recovered)))
}
