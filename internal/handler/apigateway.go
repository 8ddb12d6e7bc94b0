package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"nexus/internal/domain"

	"github.com/aws/aws-lambda-go/events"
)

const (
	tenantIDClaim  = "custom:tenantId"
	subjectIDClaim = "sub"
)

type requestBody struct {
	Text    string `json:"text"`
	Content string `json:"content"`
}

type errorBody struct {
	Error string `json:"error"`
}

// HandleAPIGateway serves an API Gateway REST proxy event. It always returns a
// response and a nil error so no failure reaches the Lambda runtime.
func (h *Handler) HandleAPIGateway(
	ctx context.Context,
	event events.APIGatewayProxyRequest,
) (events.APIGatewayProxyResponse, error) {
	req, err := parseRequest(event)
	if err != nil {
		return h.respondError(ctx, err), nil
	}

	result, err := h.Summarize(ctx, req)
	if err != nil {
		return h.respondError(ctx, err), nil
	}

	return h.respond(ctx, http.StatusOK, result), nil
}

// parseRequest validates in the order claims, body, text, and touches no
// collaborator.
func parseRequest(event events.APIGatewayProxyRequest) (domain.SummarizationRequest, error) {
	claims := claimsFrom(event.RequestContext.Authorizer)

	tenantID := claims[tenantIDClaim]
	if tenantID == "" {
		return domain.SummarizationRequest{}, errNoTenant
	}

	raw := []byte(event.Body)
	if event.IsBase64Encoded && len(raw) > 0 {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return domain.SummarizationRequest{}, errInvalidJSON
		}
		raw = decoded
	}

	var body requestBody
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			return domain.SummarizationRequest{}, errInvalidJSON
		}
	}

	text := body.Text
	if text == "" {
		text = body.Content
	}
	if text == "" {
		return domain.SummarizationRequest{}, errMissingText
	}

	return domain.SummarizationRequest{
		TenantID: tenantID,
		UserID:   claims[subjectIDClaim],
		Text:     text,
	}, nil
}

// claimsFrom reads string claims from a Cognito user pool authorizer
// ("claims" map) or, failing that, from a Lambda authorizer context.
func claimsFrom(authorizer map[string]any) map[string]string {
	source, ok := authorizer["claims"].(map[string]any)
	if !ok {
		source = authorizer
	}

	claims := make(map[string]string, len(source))
	for k, v := range source {
		if s, isString := v.(string); isString {
			claims[k] = s
		}
	}

	return claims
}

func (h *Handler) respondError(ctx context.Context, err error) events.APIGatewayProxyResponse {
	status := StatusCode(err)

	h.log.InfoContext(ctx, "Request is rejected",
		"statusCode", status,
		"error", err)

	return h.respond(ctx, status, errorBody{Error: PublicMessage(err)})
}

func (h *Handler) respond(ctx context.Context, status int, body any) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to encode response body",
			"error", err,
			"statusCode", status)

		status = http.StatusInternalServerError
		encoded = []byte(`{"error":"` + internalErrorMessage + `"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(encoded),
	}
}
