package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("CUDA out of memory")

	assert.Equal(t, "Error in summarization: CUDA out of memory", ModelFailure("summarization", cause).Error())
	assert.Equal(t, "Error in sentiment analysis: CUDA out of memory", ModelFailure("sentiment analysis", cause).Error())
	assert.Equal(t, "HTTP error occurred: Not Found", HTTP(http.StatusNotFound, "Not Found").Error())
	assert.Equal(t, "An unexpected error occurred: boom", Internal(errors.New("boom")).Error())
	assert.Equal(t, "plain", (&Error{Kind: KindInternal, Message: "plain"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation(errors.New("bad json")), http.StatusUnprocessableEntity},
		{"too large", InputTooLarge(errors.New("limit")), http.StatusRequestEntityTooLarge},
		{"model failure", ModelFailure("summarization", errors.New("x")), http.StatusInternalServerError},
		{"http preserved", HTTP(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed},
		{"http without status", &Error{Kind: KindHTTP}, http.StatusInternalServerError},
		{"unclassified", errors.New("anything"), http.StatusInternalServerError},
		{"nil", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestFromUnwrapsWrappedErrors(t *testing.T) {
	cause := errors.New("tokenizer exploded")
	wrapped := fmt.Errorf("handler: %w", ModelFailure("summarization", cause))

	appErr := From(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, KindModelFailure, appErr.Kind)
	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, KindModelFailure, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("x")))
	assert.Nil(t, From(nil))
}
