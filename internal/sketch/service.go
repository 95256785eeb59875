package sketch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eleven-am/sketch-backend/internal/analytics"
	"github.com/eleven-am/sketch-backend/internal/concept"
	"github.com/eleven-am/sketch-backend/internal/imagegen"
	"github.com/eleven-am/sketch-backend/internal/prompt"
	"github.com/eleven-am/sketch-backend/internal/session"
	"github.com/eleven-am/sketch-backend/internal/shared"
)

// Stage names one step of the text-to-image pipeline, reported through
// the OnStage callback as processing advances.
type Stage string

const (
	StageExtracting   Stage = "extracting_concepts"
	StageSynthesizing Stage = "synthesizing_prompt"
	StageGenerating   Stage = "generating_image"
	StageSaving       Stage = "saving_session"
	StageComplete     Stage = "complete"
)

// Options tune a single pipeline run.
type Options struct {
	Size             string
	PreferredBackend string
	OnStage          func(Stage)
}

// Outcome is the full result of one pipeline run. Success mirrors the
// image envelope: the rest of the pipeline has fallbacks for every
// failure mode.
type Outcome struct {
	Success        bool               `json:"success"`
	SessionID      string             `json:"session_id"`
	Transcript     string             `json:"transcript"`
	EnhancedPrompt string             `json:"enhanced_prompt"`
	Extraction     concept.Result     `json:"extraction"`
	Image          *imagegen.Envelope `json:"image"`
	ResponseTimeMs float64            `json:"response_time_ms"`
}

// Service runs the whole pipeline: concept extraction, prompt synthesis,
// image generation, persistence, and analytics.
type Service struct {
	extractor   concept.ConceptExtractor
	synthesizer *prompt.Synthesizer
	images      *imagegen.Orchestrator
	store       *session.Store
	aggregator  *analytics.Aggregator
	logger      *slog.Logger
}

func NewService(
	extractor concept.ConceptExtractor,
	synthesizer *prompt.Synthesizer,
	images *imagegen.Orchestrator,
	store *session.Store,
	aggregator *analytics.Aggregator,
	logger *slog.Logger,
) *Service {
	return &Service{
		extractor:   extractor,
		synthesizer: synthesizer,
		images:      images,
		store:       store,
		aggregator:  aggregator,
		logger:      logger.With("component", "sketch"),
	}
}

// Backends lists the image backends in fallback order.
func (s *Service) Backends() []string {
	return s.images.Available()
}

// Process turns input text into an image, saves the run, and folds it
// into the rolling analytics. The returned outcome is complete even when
// image generation fell through to the failure envelope.
func (s *Service) Process(ctx context.Context, text string, opts Options) (*Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty input text")
	}

	started := time.Now()
	notify := opts.OnStage
	if notify == nil {
		notify = func(Stage) {}
	}

	notify(StageExtracting)
	extraction := s.extractor.Extract(ctx, text)

	notify(StageSynthesizing)
	enhanced := s.synthesizer.Synthesize(text, extraction.Attributes, extraction.Keywords)

	notify(StageGenerating)
	image := s.images.Generate(ctx, enhanced, opts.Size, opts.PreferredBackend)

	elapsed := float64(time.Since(started).Milliseconds())

	notify(StageSaving)
	record := buildRecord(text, enhanced, extraction, image, elapsed)
	if err := s.store.Save(ctx, record); err != nil {
		// persistence failure should not lose the generated image
		s.logger.Error("session save failed", "error", err)
		record.ID = session.SentinelID
	}

	s.aggregator.Record(extraction.Bag, extraction.Confidence.Overall, elapsed, image.Success)

	notify(StageComplete)
	return &Outcome{
		Success:        image.Success,
		SessionID:      record.ID,
		Transcript:     text,
		EnhancedPrompt: enhanced,
		Extraction:     extraction,
		Image:          image,
		ResponseTimeMs: elapsed,
	}, nil
}

func buildRecord(text, enhanced string, extraction concept.Result, image *imagegen.Envelope, elapsed float64) *session.Record {
	return &session.Record{
		Transcript:          text,
		EnhancedPrompt:      enhanced,
		Keywords:            shared.StringSlice(extraction.Keywords),
		Objects:             shared.StringSlice(extraction.Bag.Objects),
		Colors:              shared.StringSlice(extraction.Bag.Colors),
		Weather:             shared.StringSlice(extraction.Bag.Weather),
		TimeRefs:            shared.StringSlice(extraction.Bag.Time),
		Actions:             shared.StringSlice(extraction.Bag.Actions),
		Styles:              shared.StringSlice(extraction.Bag.Style),
		Mood:                string(extraction.Attributes.Mood),
		Style:               extraction.Attributes.Style,
		Sentiment:           string(extraction.Attributes.Sentiment),
		SentimentConfidence: extraction.Attributes.SentimentConfidence,
		Confidence:          extraction.Confidence.Overall,
		ImageService:        image.Service,
		ImageData:           image.ImageData,
		ImageURL:            image.URL,
		ImageSuccess:        image.Success,
		ResponseTimeMs:      elapsed,
	}
}
