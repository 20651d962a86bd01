// HTTP client for the hosted inference endpoints.
//
// Environment:
//   - HF_TOKEN: bearer token for the hosted inference API
//   - VISION_API_URL: vision-language model endpoint
//   - TEXT_API_URL: text-generation model endpoint
//
// Both calls share a degraded-success policy: any transport, status or
// parse failure comes back as a Result carrying a diagnostic string, so
// callers never hard-fail on upstream trouble. That conflation is kept
// for compatibility with the existing API contract.

package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/modal-gateway/backend/internal/config"
	"github.com/modal-gateway/backend/internal/prompt"
)

const (
	inferenceTimeout = 30 * time.Second

	VisionModelName = "DeepSeek-VL (API)"
	TextModelName   = "Mistral-7B-Instruct-v0.3 (API)"

	// VisionModelFullName is the variant-qualified name reported by the
	// service description endpoint.
	VisionModelFullName = "DeepSeek-VL-1.3B-Chat (API)"

	visionFallbackText = "Image analysis completed via vision API."
	textFallbackText   = "Summary generated via text API."
)

// Result is an inference outcome. Degraded marks results whose Text is
// a failure diagnostic rather than model output.
type Result struct {
	Text     string
	Degraded bool
}

type InferenceClient struct {
	visionURL  string
	textURL    string
	apiToken   string
	httpClient *http.Client
}

func NewInferenceClient(cfg config.InferenceConfig) *InferenceClient {
	return &InferenceClient{
		visionURL: cfg.VisionURL,
		textURL:   cfg.TextURL,
		apiToken:  cfg.APIToken,
		httpClient: &http.Client{
			Timeout: inferenceTimeout,
		},
	}
}

type visionRequest struct {
	Inputs     visionInputs     `json:"inputs"`
	Parameters visionParameters `json:"parameters"`
}

type visionInputs struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

type visionParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	DoSample     bool    `json:"do_sample"`
}

type textRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters textParameters `json:"parameters"`
}

type textParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

// AnalyzeImage encodes img, attaches the default descriptive prompt when
// none is given and asks the vision endpoint for a description.
func (c *InferenceClient) AnalyzeImage(ctx context.Context, img image.Image, userPrompt string) Result {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return degraded("Image analysis failed", err)
	}

	if userPrompt == "" {
		userPrompt = prompt.DefaultVisionPrompt
	}

	req := visionRequest{
		Inputs: visionInputs{
			Text:  userPrompt,
			Image: base64.StdEncoding.EncodeToString(buf.Bytes()),
		},
		Parameters: visionParameters{
			MaxNewTokens: 512,
			Temperature:  0.7,
			DoSample:     true,
		},
	}

	text, err := c.post(ctx, c.visionURL, req, visionFallbackText)
	if err != nil {
		return degraded("Image analysis failed", err)
	}
	return Result{Text: text}
}

// SummarizeText wraps text in the fixed summarization instruction and
// asks the text endpoint for at most maxLength new tokens.
func (c *InferenceClient) SummarizeText(ctx context.Context, text string, maxLength int) Result {
	req := textRequest{
		Inputs: prompt.SummaryInstruction(text),
		Parameters: textParameters{
			MaxNewTokens:   maxLength,
			Temperature:    0.7,
			TopP:           0.9,
			ReturnFullText: false,
		},
	}

	out, err := c.post(ctx, c.textURL, req, textFallbackText)
	if err != nil {
		return degraded("Summarization failed", err)
	}
	return Result{Text: strings.TrimSpace(out)}
}

func (c *InferenceClient) post(ctx context.Context, url string, payload any, fallback string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	return parseGeneratedText(raw, fallback)
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

// parseGeneratedText handles both response shapes the hosted endpoints
// produce: a list of generations or a single object. An answer without
// generated_text falls back to a fixed completion notice.
func parseGeneratedText(raw []byte, fallback string) (string, error) {
	var list []generation
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 || list[0].GeneratedText == "" {
			return fallback, nil
		}
		return list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if single.GeneratedText == "" {
		return fallback, nil
	}
	return single.GeneratedText, nil
}

func degraded(prefix string, err error) Result {
	slog.Warn("inference call degraded", "error", err)
	return Result{
		Text:     fmt.Sprintf("%s: %v", prefix, err),
		Degraded: true,
	}
}
