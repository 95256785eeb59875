package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultStabilityBaseURL = "https://api.stability.ai"

// StabilityBackend generates images with Stable Diffusion XL.
type StabilityBackend struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewStabilityBackend(apiKey, baseURL string) *StabilityBackend {
	if baseURL == "" {
		baseURL = defaultStabilityBaseURL
	}
	return &StabilityBackend{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (b *StabilityBackend) Name() string {
	return "stability"
}

type stabilityRequest struct {
	TextPrompts []stabilityTextPrompt `json:"text_prompts"`
	CFGScale    float64               `json:"cfg_scale"`
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Steps       int                   `json:"steps"`
	Samples     int                   `json:"samples"`
}

type stabilityTextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
	Message string `json:"message"`
}

func (b *StabilityBackend) Generate(ctx context.Context, prompt, size string) (*Envelope, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("stability: api key not configured")
	}

	width, height, err := parseSize(size)
	if err != nil {
		width, height = 1024, 1024
	}
	// SDXL wants dimensions in multiples of 64.
	width = roundTo64(width)
	height = roundTo64(height)

	body, err := json.Marshal(stabilityRequest{
		TextPrompts: []stabilityTextPrompt{{Text: prompt, Weight: 1}},
		CFGScale:    7,
		Width:       width,
		Height:      height,
		Steps:       30,
		Samples:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("stability: marshal request: %w", err)
	}

	url := b.baseURL + "/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("stability: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stability: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stability: read response: %w", err)
	}

	var parsed stabilityResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("stability: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Message != "" {
			return nil, fmt.Errorf("stability: %s", parsed.Message)
		}
		return nil, fmt.Errorf("stability: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Artifacts) == 0 {
		return nil, fmt.Errorf("stability: empty response")
	}

	return &Envelope{
		Success:   true,
		ImageData: "data:image/png;base64," + parsed.Artifacts[0].Base64,
		Service:   b.Name(),
	}, nil
}

func roundTo64(v int) int {
	if v < 64 {
		return 64
	}
	return (v / 64) * 64
}
