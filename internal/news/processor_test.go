package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	name     string
	articles []models.Article
	err      error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Fetch(context.Context) ([]models.Article, error) {
	return s.articles, s.err
}

type mockAnalyzer struct{ mock.Mock }

func (m *mockAnalyzer) Summarize(ctx context.Context, content string) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *mockAnalyzer) Sentiment(ctx context.Context, content string) ([]models.SentimentLabel, error) {
	args := m.Called(ctx, content)
	labels, _ := args.Get(0).([]models.SentimentLabel)
	return labels, args.Error(1)
}

type recordingPublisher struct {
	articles []models.ProcessedArticle
	err      error
}

func (r *recordingPublisher) Publish(_ context.Context, article models.ProcessedArticle) error {
	r.articles = append(r.articles, article)
	return r.err
}

var fixedNow = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func newTestProcessor(sources []Source, analyzer Analyzer, pubs ...Publisher) *Processor {
	p := NewProcessor(sources, analyzer, pubs...)
	p.now = func() time.Time { return fixedNow }
	return p
}

func TestProcessorRun(t *testing.T) {
	src := staticSource{name: "static", articles: []models.Article{
		{URL: "https://example.com/a", Title: "Stocks rally", Body: "Stocks rose on Friday ...", Source: "Example"},
	}}

	analyzer := new(mockAnalyzer)
	analyzer.On("Summarize", mock.Anything, "Stocks rose on Friday ...").Return("Stocks rose.", nil)
	analyzer.On("Sentiment", mock.Anything, "Stocks rally").
		Return([]models.SentimentLabel{{Label: "POSITIVE", Score: 0.97}}, nil)

	pub := &recordingPublisher{}
	n := newTestProcessor([]Source{src}, analyzer, pub).Run(context.Background())

	assert.Equal(t, 1, n)
	require.Len(t, pub.articles, 1)
	assert.Equal(t, models.ProcessedArticle{
		Title:       "Stocks rally",
		URL:         "https://example.com/a",
		Source:      "Example",
		Summary:     "Stocks rose.",
		Sentiment:   []models.SentimentLabel{{Label: "POSITIVE", Score: 0.97}},
		ProcessedAt: fixedNow,
	}, pub.articles[0])
	analyzer.AssertExpectations(t)
}

func TestProcessorFallbacks(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("Summarize", mock.Anything, "body").Return("", errors.New("status code 500"))
	analyzer.On("Sentiment", mock.Anything, "title").Return(nil, errors.New("timeout"))

	result := newTestProcessor(nil, analyzer).Process(context.Background(), models.Article{Title: "title", Body: "body"})

	assert.Equal(t, SummaryFallback, result.Summary)
	assert.Nil(t, result.Sentiment)
	assert.Equal(t, "timeout", result.SentimentError)
}

func TestProcessorSkipsFailingSource(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("Summarize", mock.Anything, mock.Anything).Return("s", nil)
	analyzer.On("Sentiment", mock.Anything, mock.Anything).Return([]models.SentimentLabel{}, nil)

	sources := []Source{
		staticSource{name: "broken", err: errors.New("unauthorized")},
		staticSource{name: "ok", articles: []models.Article{{Title: "t", Body: "b"}}},
	}
	pub := &recordingPublisher{err: errors.New("broker down")}

	assert.Equal(t, 1, newTestProcessor(sources, analyzer, pub).Run(context.Background()))
	assert.Len(t, pub.articles, 1)
}

func TestProcessorEmptyFetchIsNoop(t *testing.T) {
	analyzer := new(mockAnalyzer)
	pub := &recordingPublisher{}

	assert.Zero(t, newTestProcessor([]Source{staticSource{name: "empty"}}, analyzer, pub).Run(context.Background()))
	assert.Empty(t, pub.articles)
	analyzer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestProcessorStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := staticSource{name: "static", articles: []models.Article{{Title: "a"}, {Title: "b"}}}
	analyzer := new(mockAnalyzer)

	assert.Zero(t, newTestProcessor([]Source{src}, analyzer).Run(ctx))
}

func TestProcessedArticleKey(t *testing.T) {
	assert.Equal(t, "https://example.com/a", models.ProcessedArticle{URL: "https://example.com/a", Title: "t"}.Key())
	assert.Equal(t, "t", models.ProcessedArticle{Title: "t"}.Key())
}
