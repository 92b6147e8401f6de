package sentiment

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/newsnlp/internal/models"
	"mvdan.cc/xurls/v2"
)

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"

	vaderThreshold = 0.20
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = xurls.Relaxed()
)

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return strings.Join(strings.Fields(input), " ")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())

	return RemoveLinks(HTMLToText(string(output)))
}

// VaderClassifier is a lexicon-based classifier that needs no model weights.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderClassifier) Classify(_ context.Context, text string) ([]models.SentimentLabel, error) {
	score, label := v.analyze(text)

	confidence := math.Abs(score)
	if label == LabelNeutral {
		confidence = 1 - confidence
	}

	return []models.SentimentLabel{{Label: label, Score: confidence}}, nil
}

func (v *VaderClassifier) HealthCheck(context.Context) error {
	return nil
}

func (v *VaderClassifier) analyze(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	sentiment := v.analyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= vaderThreshold {
		label = LabelPositive
	} else if score <= -vaderThreshold {
		label = LabelNegative
	} else {
		label = LabelNeutral
	}

	return score, label
}
