package transcription

import (
	"context"
	"errors"
	"io"
)

// ErrNoSpeech means the audio decoded fine but contained no usable words.
var ErrNoSpeech = errors.New("no speech detected")

// Result is a finished transcription of one audio upload.
type Result struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (*Result, error)
}
