package model

type SummarizeResponse struct {
	Summary          string  `json:"summary"`
	Source           string  `json:"source"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
	ModelUsed        string  `json:"model_used"`
}
