package services

import (
	"context"

	"github.com/google/uuid"
)

// Model is the summarization capability. Implementations must return the same summary for
// the same input and budget when deterministic is true.
type Model interface {
	Summarize(ctx context.Context, text string, minTokens, maxTokens int, deterministic bool) (string, error)
	Name() string      // Provider name (e.g., "openai", "gemini", "local")
	ModelName() string // Specific model used
}

// LoaderFunc constructs a Model. It may be slow and is called at most once per ModelProvider.
type LoaderFunc func(ctx context.Context) (Model, error)

// ModelStatus describes where a ModelProvider is in its lifecycle.
type ModelStatus int

const (
	ModelStatusUnloaded ModelStatus = iota // Default zero value
	ModelStatusLoading
	ModelStatusReady
	ModelStatusFailed
)

func (s ModelStatus) String() string {
	switch s {
	case ModelStatusLoading:
		return "loading"
	case ModelStatusReady:
		return "ready"
	case ModelStatusFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

type requestIDKey struct{}

// WithRequestID attaches a request ID used when recording usage.
func WithRequestID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID, or uuid.Nil.
func RequestIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(requestIDKey{}).(uuid.UUID)
	return id
}
