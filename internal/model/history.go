package model

import "time"

// EntryType is the closed set of actions recorded in a user's history.
type EntryType string

const (
	EntryTypeImageAnalysis   EntryType = "image_analysis"
	EntryTypeDocumentSummary EntryType = "document_summary"
)

type HistoryEntry struct {
	ID        string    `json:"id"`
	Type      EntryType `json:"type"`
	InputData string    `json:"input_data"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Total   int            `json:"total"`
}
