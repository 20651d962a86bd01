package service

import (
	"context"

	"github.com/modal-gateway/backend/internal/client"
	"github.com/modal-gateway/backend/internal/extract"
	"github.com/modal-gateway/backend/internal/model"
)

type AnalyzeService struct {
	inference *client.InferenceClient
	history   *HistoryService
}

func NewAnalyzeService(inference *client.InferenceClient, history *HistoryService) *AnalyzeService {
	return &AnalyzeService{
		inference: inference,
		history:   history,
	}
}

// AnalyzeImage decodes the upload, downscales it to the vision model's
// bounds and asks for a description. Degraded inference results still
// count as completed requests: the diagnostic text becomes the
// description and the action is recorded in history either way.
func (s *AnalyzeService) AnalyzeImage(ctx context.Context, username, filename string, data []byte, contentType, userPrompt string) (*model.AnalyzeImageResponse, error) {
	img, err := extract.DecodeImage(data, contentType)
	if err != nil {
		return nil, err
	}

	result := s.inference.AnalyzeImage(ctx, img, userPrompt)

	s.history.Record(username, model.EntryTypeImageAnalysis, filename, result.Text)

	bounds := img.Bounds()
	return &model.AnalyzeImageResponse{
		Description: result.Text,
		Filename:    filename,
		ImageSize:   [2]int{bounds.Dx(), bounds.Dy()},
		ModelUsed:   client.VisionModelName,
	}, nil
}
