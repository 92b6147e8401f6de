package sentiment

import (
	"context"
	"testing"

	"github.com/spacesedan/newsnlp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderClassifierLabels(t *testing.T) {
	classifier := NewVaderClassifier()

	tests := []struct {
		text string
		want string
	}{
		{"I love this! It is wonderful and amazing.", LabelPositive},
		{"This is a terrible, horrible disaster. I hate it.", LabelNegative},
		{"The meeting is on Tuesday.", LabelNeutral},
		{"", LabelNeutral},
	}

	for _, tt := range tests {
		labels, err := classifier.Classify(context.Background(), tt.text)
		require.NoError(t, err)
		require.Len(t, labels, 1)
		assert.Equal(t, tt.want, labels[0].Label, "text %q", tt.text)
		assert.GreaterOrEqual(t, labels[0].Score, 0.0)
		assert.LessOrEqual(t, labels[0].Score, 1.0)
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	input := "**Stocks** rally, see [the report](https://example.com/report) or https://news.example.com/x now"

	got := ConvertMarkdownToText(input)

	assert.Equal(t, "Stocks rally, see the report or now", got)
}

func TestConvertMarkdownToTextDecodesEntities(t *testing.T) {
	got := ConvertMarkdownToText(`AT&T said "profits rose" & shares jumped`)

	assert.NotContains(t, got, "&amp;")
	assert.NotContains(t, got, "&quot;")
	assert.Contains(t, got, "AT&T said")
	assert.Contains(t, got, "profits rose")
	assert.Contains(t, got, "& shares jumped")
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"entities", `<p>AT&amp;T said &quot;profits rose&quot; &amp; shares jumped</p>`, `AT&T said "profits rose" & shares jumped`},
		{"blocks", "<p>Markets fell.</p><p>Bonds rallied.</p>", "Markets fell. Bonds rallied."},
		{"line break", "first<br>second", "first second"},
		{"script dropped", "<p>Body</p><script>var x = 1;</script>", "Body"},
		{"numeric entity", "caf&#233; &lt;open&gt;", "café <open>"},
		{"plain text", "  no   markup here ", "no markup here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.input))
		})
	}
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "read this", RemoveLinks("read [this](https://a.example/b)"))
	assert.Equal(t, "visit today", RemoveLinks("visit www.example.com today"))
}

func TestTopLabel(t *testing.T) {
	assert.Nil(t, TopLabel(nil))

	got := TopLabel([]models.SentimentLabel{
		{Label: "negative", Score: 0.1},
		{Label: "positive", Score: 0.9},
	})
	assert.Equal(t, []models.SentimentLabel{{Label: "POSITIVE", Score: 0.9}}, got)
}
