package sentiment

import (
	"strings"

	"github.com/spacesedan/newsnlp/internal/models"
)

// TopLabel keeps the highest scoring label, as the default sentiment
// pipeline does, and normalizes its casing. An empty input yields nil.
func TopLabel(labels []models.SentimentLabel) []models.SentimentLabel {
	if len(labels) == 0 {
		return nil
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}
	best.Label = strings.ToUpper(best.Label)

	return []models.SentimentLabel{best}
}
