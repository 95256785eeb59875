package concept

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const classifyPrompt = `Classify the visual content of the following description.
Respond with a single JSON object and no other text, using exactly this schema:
{
  "objects": [], "colors": [], "weather": [], "time": [], "actions": [], "style": [],
  "keywords": [],
  "sentiment": "positive" | "negative" | "neutral",
  "mood": "cheerful" | "pleasant" | "neutral" | "somber" | "melancholic",
  "style_label": "realistic"
}

Description: %q`

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiClient calls the Generative Language API for structured
// concept classification.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		model:      model,
		apiKey:     cfg.APIKey,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// TextGenerator produces free-form text for a prompt. Satisfied by
// GeminiClient; faked in tests.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerativeExtractor asks a text generator for a structured
// classification and falls back to the rule-based extractor on any
// transport, parse, or validation failure.
type GenerativeExtractor struct {
	generator TextGenerator
	fallback  *Extractor
	logger    *slog.Logger
}

func NewGenerativeExtractor(generator TextGenerator, fallback *Extractor, logger *slog.Logger) *GenerativeExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerativeExtractor{
		generator: generator,
		fallback:  fallback,
		logger:    logger.With("component", "concept-extractor"),
	}
}

type llmClassification struct {
	Objects    []string `json:"objects"`
	Colors     []string `json:"colors"`
	Weather    []string `json:"weather"`
	Time       []string `json:"time"`
	Actions    []string `json:"actions"`
	Style      []string `json:"style"`
	Keywords   []string `json:"keywords"`
	Sentiment  string   `json:"sentiment"`
	Mood       string   `json:"mood"`
	StyleLabel string   `json:"style_label"`
}

func (e *GenerativeExtractor) Extract(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" || e.generator == nil {
		return e.fallback.Extract(ctx, text)
	}

	reply, err := e.generator.Generate(ctx, fmt.Sprintf(classifyPrompt, text))
	if err != nil {
		e.logger.Warn("generative classification failed, using rule-based path", "error", err)
		return e.fallback.Extract(ctx, text)
	}

	parsed, err := parseClassification(reply)
	if err != nil {
		e.logger.Warn("generative classification unparseable, using rule-based path", "error", err)
		return e.fallback.Extract(ctx, text)
	}

	bag := Bag{
		Objects: dedupeLower(parsed.Objects),
		Colors:  dedupeLower(parsed.Colors),
		Weather: dedupeLower(parsed.Weather),
		Time:    dedupeLower(parsed.Time),
		Actions: dedupeLower(parsed.Actions),
		Style:   dedupeLower(parsed.Style),
	}

	style := parsed.StyleLabel
	if style == "" {
		style = "realistic"
	}

	sentiment := Sentiment(parsed.Sentiment)
	mood := Mood(parsed.Mood)

	return Result{
		Bag: bag,
		Attributes: Attributes{
			Mood:                mood,
			Style:               style,
			Sentiment:           sentiment,
			SentimentConfidence: 0.5,
		},
		Confidence: scoreConfidence(bag),
		Keywords:   dedupeLower(parsed.Keywords),
	}
}

// parseClassification locates the first JSON object embedded in the
// reply and validates enum fields.
func parseClassification(reply string) (*llmClassification, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var parsed llmClassification
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}

	switch Sentiment(parsed.Sentiment) {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		return nil, fmt.Errorf("invalid sentiment %q", parsed.Sentiment)
	}

	switch Mood(parsed.Mood) {
	case MoodCheerful, MoodPleasant, MoodNeutral, MoodSomber, MoodMelancholic:
	default:
		return nil, fmt.Errorf("invalid mood %q", parsed.Mood)
	}

	return &parsed, nil
}

func dedupeLower(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{})
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
