package models

// SummaryParameters mirrors the generation kwargs accepted by the hosted
// summarization pipeline.
type SummaryParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type SummaryRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters SummaryParameters `json:"parameters"`
}

type SentimentAnalysisRequest struct {
	Inputs string `json:"inputs"`
}
