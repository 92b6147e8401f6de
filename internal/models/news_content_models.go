package models

// NewsContent is the request body shared by /summarize and /sentiment.
// Content is a pointer so that a missing field fails validation while an
// empty string is still accepted.
type NewsContent struct {
	Content *string `json:"content" binding:"required"`
}

// Text returns the content, or "" when it is absent.
func (n NewsContent) Text() string {
	if n.Content == nil {
		return ""
	}
	return *n.Content
}

type SummaryResult struct {
	Summary string `json:"summary"`
}

type SentimentLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type SentimentResult struct {
	Sentiment []SentimentLabel `json:"sentiment"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	OK         bool `json:"ok"`
	Summarizer bool `json:"summarizer"`
	Sentiment  bool `json:"sentiment"`
}
