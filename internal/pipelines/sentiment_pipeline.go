package pipelines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	hugotpipelines "github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/spacesedan/newsnlp/internal/sentiment"
)

const sentimentPipelineName = "sentimentPipeline"

// SentimentPipeline classifies text with a local text-classification model.
type SentimentPipeline struct {
	session  *hugot.Session
	pipeline *hugotpipelines.TextClassificationPipeline
	modelID  string
}

// NewSentimentPipeline downloads modelID into modelDir when missing and
// starts an onnxruntime session for it. onnxLibraryPath overrides where the
// onnxruntime shared library is loaded from.
func NewSentimentPipeline(modelDir, modelID, onnxLibraryPath string) (*SentimentPipeline, error) {
	modelPath, err := EnsureModel(modelDir, modelID)
	if err != nil {
		return nil, err
	}

	var opts []options.WithOption
	if onnxLibraryPath != "" {
		opts = append(opts, options.WithOnnxLibraryPath(onnxLibraryPath))
	}

	session, err := hugot.NewORTSession(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      sentimentPipelineName,
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			slog.Warn("[SentimentPipeline] Failed to destroy session",
				slog.String("error", destroyErr.Error()))
		}
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	slog.Info("[SentimentPipeline] Pipeline ready",
		slog.String("model", modelID),
		slog.String("path", modelPath))

	return &SentimentPipeline{
		session:  session,
		pipeline: pipeline,
		modelID:  modelID,
	}, nil
}

// Classify runs the pipeline on text and returns its top label. Inference is
// not interruptible, ctx is only checked before it starts.
func (p *SentimentPipeline) Classify(ctx context.Context, text string) ([]models.SentimentLabel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	output, err := p.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("sentiment pipeline failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return nil, errors.New("sentiment pipeline returned no output")
	}

	labels := make([]models.SentimentLabel, 0, len(output.ClassificationOutputs[0]))
	for _, c := range output.ClassificationOutputs[0] {
		labels = append(labels, models.SentimentLabel{
			Label: c.Label,
			Score: float64(c.Score),
		})
	}

	slog.Debug("[SentimentPipeline] Classified text",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("labels", len(labels)))

	top := sentiment.TopLabel(labels)
	if top == nil {
		return nil, errors.New("sentiment pipeline returned no labels")
	}
	return top, nil
}

// HealthCheck classifies a fixed sentence.
func (p *SentimentPipeline) HealthCheck(ctx context.Context) error {
	_, err := p.Classify(ctx, "ok")
	return err
}

func (p *SentimentPipeline) Close() error {
	slog.Info("[SentimentPipeline] Destroying hugot session", slog.String("model", p.modelID))
	return p.session.Destroy()
}
