package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/modal-gateway/backend/internal/client"
	"github.com/modal-gateway/backend/internal/extract"
	"github.com/modal-gateway/backend/internal/model"
)

// DefaultSummaryLength bounds the summary when the caller does not ask
// for a specific length.
const DefaultSummaryLength = 300

var (
	ErrMissingInput   = errors.New("either file or url must be provided")
	ErrAmbiguousInput = errors.New("provide either file or url, not both")
	ErrEmptyContent   = errors.New("no text content found")
)

type SummarizeService struct {
	inference *client.InferenceClient
	scraper   *extract.URLScraper
	history   *HistoryService
}

func NewSummarizeService(inference *client.InferenceClient, scraper *extract.URLScraper, history *HistoryService) *SummarizeService {
	return &SummarizeService{
		inference: inference,
		scraper:   scraper,
		history:   history,
	}
}

// SummarizeInput carries exactly one of a file upload or a URL.
type SummarizeInput struct {
	Filename    string
	FileData    []byte
	ContentType string
	URL         string
	MaxLength   int
}

// Summarize extracts text from the given source and summarizes it.
// Exactly one of file and url must be set; both fails with
// ErrAmbiguousInput, neither with ErrMissingInput.
func (s *SummarizeService) Summarize(ctx context.Context, username string, in SummarizeInput) (*model.SummarizeResponse, error) {
	hasFile := in.Filename != "" || len(in.FileData) > 0
	hasURL := in.URL != ""

	switch {
	case hasFile && hasURL:
		return nil, ErrAmbiguousInput
	case !hasFile && !hasURL:
		return nil, ErrMissingInput
	}

	var (
		text   string
		source string
		err    error
	)
	if hasFile {
		source = in.Filename
		text, err = extract.FromFile(in.FileData, in.ContentType)
	} else {
		source = in.URL
		text, err = s.scraper.Scrape(ctx, in.URL)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	maxLength := in.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	result := s.inference.SummarizeText(ctx, text, maxLength)

	s.history.Record(username, model.EntryTypeDocumentSummary, source, result.Text)

	return &model.SummarizeResponse{
		Summary:          result.Text,
		Source:           source,
		OriginalLength:   len(text),
		SummaryLength:    len(result.Text),
		CompressionRatio: compressionRatio(len(result.Text), len(text)),
		ModelUsed:        client.TextModelName,
	}, nil
}

// compressionRatio is len(summary)/len(text)*100 rounded to 2 decimals.
func compressionRatio(summaryLen, textLen int) float64 {
	return math.Round(float64(summaryLen)/float64(textLen)*100*100) / 100
}
