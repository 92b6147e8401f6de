package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spacesedan/newsnlp/internal/apperrors"
	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSummarizer struct{ mock.Mock }

func (m *mockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type mockClassifier struct{ mock.Mock }

func (m *mockClassifier) Classify(ctx context.Context, text string) ([]models.SentimentLabel, error) {
	args := m.Called(ctx, text)
	labels, _ := args.Get(0).([]models.SentimentLabel)
	return labels, args.Error(1)
}

type recordedCall struct {
	task string
	err  error
}

type fakeRecorder struct{ calls []recordedCall }

func (f *fakeRecorder) ObserveInference(task string, _ time.Duration, err error) {
	f.calls = append(f.calls, recordedCall{task: task, err: err})
}

func TestSummarize(t *testing.T) {
	summarizer := new(mockSummarizer)
	summarizer.On("Summarize", mock.Anything, "A long article").Return("Short.", nil)
	recorder := &fakeRecorder{}

	nlp := NewNLP(summarizer, new(mockClassifier), recorder)
	result, err := nlp.Summarize(context.Background(), "A long article")

	require.NoError(t, err)
	assert.Equal(t, models.SummaryResult{Summary: "Short."}, result)
	assert.Equal(t, []recordedCall{{task: TaskSummarization}}, recorder.calls)
	summarizer.AssertExpectations(t)
}

func TestSummarizeFailureIsModelFailure(t *testing.T) {
	summarizer := new(mockSummarizer)
	summarizer.On("Summarize", mock.Anything, "text").Return("", errors.New("CUDA out of memory"))

	nlp := NewNLP(summarizer, new(mockClassifier), nil)
	_, err := nlp.Summarize(context.Background(), "text")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindModelFailure, apperrors.KindOf(err))
	assert.Equal(t, "Error in summarization: CUDA out of memory", err.Error())
}

func TestAnalyzeSentiment(t *testing.T) {
	classifier := new(mockClassifier)
	classifier.On("Classify", mock.Anything, "I love this!").
		Return([]models.SentimentLabel{{Label: "POSITIVE", Score: 0.9998}}, nil)

	nlp := NewNLP(new(mockSummarizer), classifier, nil)
	result, err := nlp.AnalyzeSentiment(context.Background(), "I love this!")

	require.NoError(t, err)
	assert.Equal(t, []models.SentimentLabel{{Label: "POSITIVE", Score: 0.9998}}, result.Sentiment)
}

func TestAnalyzeSentimentPassesEmptyText(t *testing.T) {
	classifier := new(mockClassifier)
	classifier.On("Classify", mock.Anything, "").Return(nil, nil)

	nlp := NewNLP(new(mockSummarizer), classifier, nil)
	result, err := nlp.AnalyzeSentiment(context.Background(), "")

	require.NoError(t, err)
	assert.NotNil(t, result.Sentiment)
	assert.Empty(t, result.Sentiment)
	classifier.AssertExpectations(t)
}

func TestAnalyzeSentimentFailure(t *testing.T) {
	classifier := new(mockClassifier)
	classifier.On("Classify", mock.Anything, "text").Return(nil, errors.New("pipeline crashed"))
	recorder := &fakeRecorder{}

	nlp := NewNLP(new(mockSummarizer), classifier, recorder)
	_, err := nlp.AnalyzeSentiment(context.Background(), "text")

	require.Error(t, err)
	assert.Equal(t, "Error in sentiment analysis: pipeline crashed", err.Error())
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, TaskSentiment, recorder.calls[0].task)
	assert.Error(t, recorder.calls[0].err)
}
