package bootstrap

import (
	"log/slog"

	"github.com/eleven-am/sketch-backend/internal/analytics"
	"github.com/eleven-am/sketch-backend/internal/concept"
	"github.com/eleven-am/sketch-backend/internal/imagegen"
	"github.com/eleven-am/sketch-backend/internal/prompt"
	"github.com/eleven-am/sketch-backend/internal/session"
	"github.com/eleven-am/sketch-backend/internal/sketch"
	"github.com/eleven-am/sketch-backend/internal/transcription"
	"go.uber.org/fx"
)

// ProvideExtractor prefers the Gemini-assisted extractor when an API key
// is configured; the rule-based extractor always backs it.
func ProvideExtractor(cfg *Config, logger *slog.Logger) concept.ConceptExtractor {
	base := concept.NewExtractor(concept.DefaultThresholds())
	if cfg.GeminiAPIKey == "" {
		return base
	}

	client := concept.NewGeminiClient(concept.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	return concept.NewGenerativeExtractor(client, base, logger)
}

func ProvideSynthesizer() *prompt.Synthesizer {
	return prompt.NewSynthesizer()
}

// ProvideImageBackends builds the fallback chain: cloud backends for
// configured keys, the local placeholder always last.
func ProvideImageBackends(cfg *Config, logger *slog.Logger) []imagegen.Backend {
	var backends []imagegen.Backend
	if cfg.OpenAIAPIKey != "" {
		backends = append(backends, imagegen.NewOpenAIBackend(cfg.OpenAIAPIKey, ""))
	}
	if cfg.StabilityAPIKey != "" {
		backends = append(backends, imagegen.NewStabilityBackend(cfg.StabilityAPIKey, ""))
	}
	backends = append(backends, imagegen.NewPlaceholderBackend())

	logger.Info("image backends configured", "count", len(backends))
	return backends
}

func ProvideOrchestrator(cfg *Config, backends []imagegen.Backend, logger *slog.Logger) *imagegen.Orchestrator {
	return imagegen.NewOrchestrator(backends, cfg.BackendTimeout, logger)
}

func ProvideAggregator(cfg *Config) *analytics.Aggregator {
	return analytics.NewAggregator(cfg.AnalyticsWindow)
}

// ProvideTranscriber returns nil when Deepgram is not configured; voice
// endpoints then answer 503 while text input keeps working.
func ProvideTranscriber(cfg *Config, logger *slog.Logger) transcription.Transcriber {
	if cfg.DeepgramAPIKey == "" {
		logger.Warn("no deepgram key configured, voice input disabled")
		return nil
	}

	client, err := transcription.NewClient(cfg.DeepgramAPIKey, cfg.DeepgramModel, cfg.DeepgramLanguage, logger)
	if err != nil {
		logger.Error("transcription client setup failed, voice input disabled", "error", err)
		return nil
	}
	return client
}

func ProvideSketchService(
	extractor concept.ConceptExtractor,
	synthesizer *prompt.Synthesizer,
	orchestrator *imagegen.Orchestrator,
	store *session.Store,
	aggregator *analytics.Aggregator,
	logger *slog.Logger,
) *sketch.Service {
	return sketch.NewService(extractor, synthesizer, orchestrator, store, aggregator, logger)
}

var PipelineModule = fx.Options(
	fx.Provide(
		ProvideExtractor,
		ProvideSynthesizer,
		ProvideImageBackends,
		ProvideOrchestrator,
		ProvideAggregator,
		ProvideTranscriber,
		ProvideSketchService,
	),
)
