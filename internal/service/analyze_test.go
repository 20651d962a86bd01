package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modal-gateway/backend/internal/client"
	"github.com/modal-gateway/backend/internal/config"
	"github.com/modal-gateway/backend/internal/extract"
	"github.com/modal-gateway/backend/internal/model"
	"github.com/modal-gateway/backend/internal/store"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func newAnalyzeService(t *testing.T, inferenceURL string) (*AnalyzeService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	inference := client.NewInferenceClient(config.InferenceConfig{VisionURL: inferenceURL})
	return NewAnalyzeService(inference, NewHistoryService(mem)), mem
}

func TestAnalyzeImage(t *testing.T) {
	svc, mem := newAnalyzeService(t, stubInference(t, "a small dark square").URL)

	resp, err := svc.AnalyzeImage(context.Background(), "alice", "photo.png", pngBytes(t, 32, 32), "image/png", "")
	require.NoError(t, err)

	assert.Equal(t, "a small dark square", resp.Description)
	assert.Equal(t, "photo.png", resp.Filename)
	assert.Equal(t, [2]int{32, 32}, resp.ImageSize)
	assert.Equal(t, client.VisionModelName, resp.ModelUsed)

	entries := mem.ListHistory("alice", 0, "")
	require.Len(t, entries, 1)
	assert.Equal(t, model.EntryTypeImageAnalysis, entries[0].Type)
	assert.Equal(t, "photo.png", entries[0].InputData)
}

func TestAnalyzeImageReportsResizedDimensions(t *testing.T) {
	svc, _ := newAnalyzeService(t, stubInference(t, "wide").URL)

	resp, err := svc.AnalyzeImage(context.Background(), "alice", "wide.png", pngBytes(t, 1536, 768), "image/png", "")
	require.NoError(t, err)

	assert.LessOrEqual(t, resp.ImageSize[0], extract.MaxImageDim)
	assert.LessOrEqual(t, resp.ImageSize[1], extract.MaxImageDim)
	assert.Equal(t, extract.MaxImageDim, resp.ImageSize[0])
}

func TestAnalyzeImageRejectsUnsupportedType(t *testing.T) {
	svc, mem := newAnalyzeService(t, stubInference(t, "unused").URL)

	_, err := svc.AnalyzeImage(context.Background(), "alice", "anim.gif", []byte("GIF89a"), "image/gif", "")
	assert.ErrorIs(t, err, extract.ErrUnsupportedType)
	assert.Empty(t, mem.ListHistory("alice", 0, ""))
}

func TestAnalyzeImageDegradedInferenceIsStillSuccess(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(broken.Close)

	svc, mem := newAnalyzeService(t, broken.URL)

	resp, err := svc.AnalyzeImage(context.Background(), "alice", "photo.png", pngBytes(t, 16, 16), "image/png", "")
	require.NoError(t, err)

	assert.Contains(t, resp.Description, "Image analysis failed")
	require.Len(t, mem.ListHistory("alice", 0, ""), 1)
}
