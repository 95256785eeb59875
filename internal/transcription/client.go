package transcription

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	listenv1rest "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/rest"
	"github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces"
	listenclient "github.com/deepgram/deepgram-go-sdk/pkg/client/listen"
)

const (
	defaultModel    = "nova-2"
	defaultLanguage = "en"
)

// Client transcribes uploaded audio through Deepgram's prerecorded API.
type Client struct {
	api      *listenv1rest.Client
	model    string
	language string
	logger   *slog.Logger
}

func NewClient(apiKey, model, language string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepgram api key not configured")
	}
	if model == "" {
		model = defaultModel
	}
	if language == "" {
		language = defaultLanguage
	}

	c := listenclient.NewREST(apiKey, &interfaces.ClientOptions{})

	return &Client{
		api:      listenv1rest.New(c),
		model:    model,
		language: language,
		logger:   logger.With("component", "transcription"),
	}, nil
}

func (c *Client) Transcribe(ctx context.Context, audio io.Reader) (*Result, error) {
	options := &interfaces.PreRecordedTranscriptionOptions{
		Model:       c.model,
		Language:    c.language,
		SmartFormat: true,
		Punctuate:   true,
	}

	res, err := c.api.FromStream(ctx, audio, options)
	if err != nil {
		return nil, fmt.Errorf("deepgram request failed: %w", err)
	}

	if res == nil || len(res.Results.Channels) == 0 || len(res.Results.Channels[0].Alternatives) == 0 {
		return nil, ErrNoSpeech
	}

	alternative := res.Results.Channels[0].Alternatives[0]
	transcript := strings.TrimSpace(alternative.Transcript)
	if transcript == "" {
		return nil, ErrNoSpeech
	}

	c.logger.Debug("transcription complete", "confidence", alternative.Confidence)

	return &Result{
		Transcript: transcript,
		Confidence: alternative.Confidence,
	}, nil
}
