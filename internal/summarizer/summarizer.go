package summarizer

import (
	"context"
	"errors"
)

// Fixed generation parameters sent with every request.
const (
	MaxTokens   = 1024
	Temperature = 0.7
)

// ErrInference marks every failure of the model backend: transport errors,
// throttling, timeouts and undecodable payloads alike.
var ErrInference = errors.New("model inference failed")

// Payload is the raw decoded model response.
type Payload map[string]any

// Invoker sends one composed prompt to a model.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, prompt string) (Payload, error)
}
