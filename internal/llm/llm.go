package llm

import (
	"context"
	"fmt"

	"ai-travel-planner/internal/shared"

	"github.com/google/generative-ai-go/genai"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// StructuredGenerator is an interface for generating JSON text that conforms
// to a requested output schema. Implementations perform a single attempt per
// call; retries are the caller's responsibility.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, prompt, systemInstruction string, schema *genai.Schema) (ContentResponse, error)
}

// Client is a StructuredGenerator backed by a remote service that holds
// resources needing cleanup.
type Client interface {
	StructuredGenerator
	Close() error
}

// ServiceError reports a failure of the remote generation service itself
// (rate limit, auth failure, malformed request, empty candidates). It is
// distinct from response-decoding failures so callers can decide between a
// canned fallback and a targeted message.
type ServiceError struct {
	Backend string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Backend, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
