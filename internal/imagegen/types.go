package imagegen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const DefaultSize = "512x512"

// Envelope is the normalized result shape shared by every backend.
type Envelope struct {
	Success   bool   `json:"success"`
	ImageData string `json:"image_data,omitempty"`
	URL       string `json:"url,omitempty"`
	Service   string `json:"service"`
	Error     string `json:"error,omitempty"`
}

// Backend produces an image for a prompt. Implementations fail fast;
// retries are the orchestrator's concern (it has none, it moves on).
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt, size string) (*Envelope, error)
}

func parseSize(size string) (width, height int, err error) {
	parts := strings.SplitN(size, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q", size)
	}
	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q", size)
	}
	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q", size)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("non-positive size %q", size)
	}
	return width, height, nil
}
