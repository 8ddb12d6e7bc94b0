package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const jsonContentType = "application/json"

// InvokeModelAPI is the subset of *bedrockruntime.Client used by BedrockInvoker.
type InvokeModelAPI interface {
	InvokeModel(
		ctx context.Context,
		params *bedrockruntime.InvokeModelInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.InvokeModelOutput, error)
}

type bedrockRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
}

// BedrockInvoker calls the Bedrock InvokeModel API.
type BedrockInvoker struct {
	client InvokeModelAPI
}

func NewBedrockInvoker(client InvokeModelAPI) (*BedrockInvoker, error) {
	if client == nil {
		return nil, errors.New("bedrock client is nil")
	}

	return &BedrockInvoker{client: client}, nil
}

func (b *BedrockInvoker) Invoke(
	ctx context.Context,
	modelID string,
	prompt string,
) (Payload, error) {
	body, err := json.Marshal(bedrockRequest{
		Prompt:      prompt,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", ErrInference, err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String(jsonContentType),
		Accept:      aws.String(jsonContentType),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invoke model (modelID = %s): %w", ErrInference, modelID, err)
	}

	var payload Payload
	if err = json.Unmarshal(out.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response (modelID = %s): %w", ErrInference, modelID, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: response is empty (modelID = %s)", ErrInference, modelID)
	}

	return payload, nil
}
