package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

// OpenAIInvoker calls OpenAI's Responses API (or a compatible endpoint). The
// decoded response body is returned with the aggregated output text placed
// under "completion" so the usual extractors apply.
type OpenAIInvoker struct {
	client openai.Client
}

// NewOpenAIInvoker builds a client with SDK retries turned off.
func NewOpenAIInvoker(apiKey string, baseURL string) (*OpenAIInvoker, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIInvoker{
		client: openai.NewClient(opts...),
	}, nil
}

func (o *OpenAIInvoker) Invoke(
	ctx context.Context,
	modelID string,
	prompt string,
) (Payload, error) {
	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           openai.ChatModel(modelID),
		MaxOutputTokens: openai.Int(MaxTokens),
		Temperature:     openai.Float(Temperature),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: do request (modelID = %s): %w", ErrInference, modelID, err)
	}

	if resp.Status == "incomplete" {
		return nil, fmt.Errorf(
			"%w: response is incomplete (reason = %s, modelID = %s)",
			ErrInference,
			resp.IncompleteDetails.Reason,
			modelID,
		)
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return nil, fmt.Errorf("%w: output text is missing (modelID = %s)", ErrInference, modelID)
	}

	payload := Payload{}
	if raw := resp.RawJSON(); raw != "" {
		if err = json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("%w: decode response (modelID = %s): %w", ErrInference, modelID, err)
		}
	}
	payload["completion"] = text

	return payload, nil
}
