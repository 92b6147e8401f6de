package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNLPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.NewsContent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch r.URL.Path {
		case "/summarize":
			assert.Equal(t, "Stocks rose on Friday after ...", req.Text())
			_, _ = io.WriteString(w, `{"summary":"Stocks rose."}`)
		case "/sentiment":
			_, _ = io.WriteString(w, `{"sentiment":[{"label":"POSITIVE","score":0.97}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewNLPClient(server.URL+"/", 5*time.Second)

	summary, err := client.Summarize(context.Background(), "Stocks rose on Friday after ...")
	require.NoError(t, err)
	assert.Equal(t, "Stocks rose.", summary)

	labels, err := client.Sentiment(context.Background(), "Stocks rally")
	require.NoError(t, err)
	assert.Equal(t, []models.SentimentLabel{{Label: "POSITIVE", Score: 0.97}}, labels)
}

func TestNLPClientSurfacesErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"Error in summarization: model offline"}`)
	}))
	defer server.Close()

	_, err := NewNLPClient(server.URL, 5*time.Second).Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "Error in summarization: model offline")
}
