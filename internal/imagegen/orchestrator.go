package imagegen

import (
	"context"
	"log/slog"
	"time"
)

// Orchestrator walks its backends in order and returns the first success.
// A preferred backend is tried first when the caller names one; the rest
// keep their relative order.
type Orchestrator struct {
	backends []Backend
	timeout  time.Duration
	logger   *slog.Logger
}

func NewOrchestrator(backends []Backend, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Orchestrator{
		backends: backends,
		timeout:  timeout,
		logger:   logger.With("component", "imagegen"),
	}
}

// Available lists backend names in fallback order.
func (o *Orchestrator) Available() []string {
	names := make([]string, 0, len(o.backends))
	for _, b := range o.backends {
		names = append(names, b.Name())
	}
	return names
}

// Generate tries each backend until one succeeds. The returned envelope
// has Success=false only when every backend failed.
func (o *Orchestrator) Generate(ctx context.Context, prompt, size, preferred string) *Envelope {
	if size == "" {
		size = DefaultSize
	}

	var lastErr error
	for _, backend := range o.order(preferred) {
		env, err := o.tryBackend(ctx, backend, prompt, size)
		if err != nil {
			o.logger.Warn("backend failed", "backend", backend.Name(), "error", err)
			lastErr = err
			continue
		}
		if env != nil && env.Success {
			return env
		}
	}

	env := &Envelope{Success: false, Service: "none"}
	if lastErr != nil {
		env.Error = lastErr.Error()
	} else {
		env.Error = "no image backends configured"
	}
	return env
}

func (o *Orchestrator) order(preferred string) []Backend {
	if preferred == "" {
		return o.backends
	}
	ordered := make([]Backend, 0, len(o.backends))
	for _, b := range o.backends {
		if b.Name() == preferred {
			ordered = append(ordered, b)
		}
	}
	for _, b := range o.backends {
		if b.Name() != preferred {
			ordered = append(ordered, b)
		}
	}
	return ordered
}

func (o *Orchestrator) tryBackend(ctx context.Context, backend Backend, prompt, size string) (*Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return backend.Generate(ctx, prompt, size)
}
