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

const defaultOpenAIBaseURL = "https://api.openai.com"

// OpenAIBackend generates images with DALL-E 3.
type OpenAIBackend struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIBackend(apiKey, baseURL string) *OpenAIBackend {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIBackend{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (b *OpenAIBackend) Name() string {
	return "dalle"
}

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (b *OpenAIBackend) Generate(ctx context.Context, prompt, size string) (*Envelope, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("openai: api key not configured")
	}

	// DALL-E 3 only accepts a fixed set of sizes; anything else gets the
	// closest square it supports.
	apiSize := size
	switch size {
	case "1024x1024", "1792x1024", "1024x1792":
	default:
		apiSize = "1024x1024"
	}

	body, err := json.Marshal(openAIImageRequest{
		Model:          "dall-e-3",
		Prompt:         prompt,
		N:              1,
		Size:           apiSize,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}

	var parsed openAIImageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("openai: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	env := &Envelope{Success: true, Service: b.Name()}
	if parsed.Data[0].B64JSON != "" {
		env.ImageData = "data:image/png;base64," + parsed.Data[0].B64JSON
	} else {
		env.URL = parsed.Data[0].URL
	}
	return env, nil
}
