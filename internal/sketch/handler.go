package sketch

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/eleven-am/sketch-backend/internal/shared"
	"github.com/eleven-am/sketch-backend/internal/transcription"
	"github.com/labstack/echo/v4"
)

// maxAudioBytes bounds voice uploads (25 MB).
const maxAudioBytes = 25 << 20

type Handler struct {
	service     *Service
	transcriber transcription.Transcriber
	logger      *slog.Logger
}

// NewHandler wires the pipeline endpoints. The transcriber may be nil
// when no speech-to-text credentials are configured; voice uploads then
// answer 503 while text input keeps working.
func NewHandler(service *Service, transcriber transcription.Transcriber, logger *slog.Logger) *Handler {
	return &Handler{
		service:     service,
		transcriber: transcriber,
		logger:      logger.With("handler", "sketch"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/text-to-image", h.TextToImage)
	g.POST("/process-voice", h.ProcessVoice)
	g.GET("/backends", h.ListBackends)
}

type textToImageRequest struct {
	Text    string `json:"text"`
	Size    string `json:"size"`
	Service string `json:"service"`
}

func (h *Handler) TextToImage(c echo.Context) error {
	var req textToImageRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_body", "invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return shared.BadRequest("missing_text", "text is required")
	}

	outcome, err := h.service.Process(c.Request().Context(), req.Text, Options{
		Size:             req.Size,
		PreferredBackend: req.Service,
	})
	if err != nil {
		h.logger.Error("pipeline failed", "error", err)
		return shared.InternalError("pipeline_failed", "failed to process text")
	}

	return c.JSON(http.StatusOK, outcome)
}

func (h *Handler) ProcessVoice(c echo.Context) error {
	input, err := h.resolveInput(c)
	if err != nil {
		return err
	}

	outcome, procErr := h.service.Process(c.Request().Context(), input.text, Options{
		Size:             input.size,
		PreferredBackend: input.service,
	})
	if procErr != nil {
		h.logger.Error("pipeline failed", "error", procErr)
		return shared.InternalError("pipeline_failed", "failed to process voice input")
	}

	return c.JSON(http.StatusOK, outcome)
}

type voiceInput struct {
	text    string
	size    string
	service string
}

// resolveInput prefers an uploaded audio file; a text form field or JSON
// body works as a fallback so clients without microphone access can use
// the same endpoint. Size and service options come from the same source
// as the text.
func (h *Handler) resolveInput(c echo.Context) (voiceInput, error) {
	formOpts := voiceInput{size: c.FormValue("size"), service: c.FormValue("service")}

	file, err := c.FormFile("audio")
	if err == nil {
		if h.transcriber == nil {
			return voiceInput{}, shared.ServiceUnavailable("transcription_unavailable", "speech-to-text is not configured")
		}
		if file.Size > maxAudioBytes {
			return voiceInput{}, shared.BadRequest("audio_too_large", "audio upload exceeds the size limit")
		}

		src, err := file.Open()
		if err != nil {
			return voiceInput{}, shared.BadRequest("invalid_audio", "could not read audio upload")
		}
		defer src.Close()

		result, err := h.transcriber.Transcribe(c.Request().Context(), src)
		if err == transcription.ErrNoSpeech {
			return voiceInput{}, shared.BadRequest("no_speech", "no speech detected in audio")
		}
		if err != nil {
			h.logger.Error("transcription failed", "error", err)
			return voiceInput{}, shared.ServiceUnavailable("transcription_failed", "speech-to-text request failed")
		}
		formOpts.text = result.Transcript
		return formOpts, nil
	}

	if text := strings.TrimSpace(c.FormValue("text")); text != "" {
		formOpts.text = text
		return formOpts, nil
	}

	var req textToImageRequest
	if err := c.Bind(&req); err == nil && strings.TrimSpace(req.Text) != "" {
		return voiceInput{text: req.Text, size: req.Size, service: req.Service}, nil
	}

	return voiceInput{}, shared.BadRequest("missing_input", "provide an audio file or text")
}

func (h *Handler) ListBackends(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"backends": h.service.Backends(),
	})
}
