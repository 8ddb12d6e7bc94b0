package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"nexus/internal/cache"
	"nexus/internal/domain"
	"nexus/internal/prompt"
	"nexus/internal/summarizer"
	"nexus/internal/tenantconfig"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Handler runs one summarization per invocation. It owns no mutable state;
// every collaborator is built once per process and shared.
type Handler struct {
	resolver     *tenantconfig.Resolver
	prompts      *prompt.Loader
	cache        *cache.Cache
	invoker      summarizer.Invoker
	promptBucket string
	log          *slog.Logger
}

func New(
	resolver *tenantconfig.Resolver,
	prompts *prompt.Loader,
	summaryCache *cache.Cache,
	invoker summarizer.Invoker,
	promptBucket string,
	log *slog.Logger,
) (*Handler, error) {
	if resolver == nil {
		return nil, errors.New("config resolver is nil")
	}
	if prompts == nil {
		return nil, errors.New("prompt loader is nil")
	}
	if invoker == nil {
		return nil, errors.New("inference invoker is nil")
	}
	if log == nil {
		return nil, errors.New("logger is nil")
	}

	return &Handler{
		resolver:     resolver,
		prompts:      prompts,
		cache:        summaryCache,
		invoker:      invoker,
		promptBucket: strings.TrimSpace(promptBucket),
		log:          log,
	}, nil
}

// Summarize resolves the tenant config, composes the prompt, and answers from
// the cache or the model. Errors are ErrUnauthorized, ErrMalformedInput or
// ErrInferenceFailed.
func (h *Handler) Summarize(
	ctx context.Context,
	req domain.SummarizationRequest,
) (domain.SummarizationResult, error) {
	if req.TenantID == "" {
		return domain.SummarizationResult{}, errNoTenant
	}
	if req.Text == "" {
		return domain.SummarizationResult{}, errMissingText
	}

	log := h.requestLogger(ctx, req)

	settings := h.resolver.Resolve(ctx, req.TenantID)
	template := h.prompts.Load(ctx, h.promptBucket, settings.PromptKey)
	fullPrompt := prompt.Compose(template, req.Text)

	cacheKey := cache.Key(req.TenantID, settings.ModelID, req.Text)
	log = log.With(
		"modelID", settings.ModelID,
		"promptKey", settings.PromptKey,
		"cacheKey", cacheKey)

	if summary, ok := h.cache.Lookup(ctx, cacheKey); ok {
		log.InfoContext(ctx, "Summary is served from cache")

		return domain.SummarizationResult{Summary: summary, Cached: true}, nil
	}

	payload, err := h.invoker.Invoke(ctx, settings.ModelID, fullPrompt)
	if err != nil {
		log.ErrorContext(ctx, "Failed to invoke model",
			"error", err)

		return domain.SummarizationResult{}, errInference
	}

	summary, err := summarizer.ExtractSummary(payload)
	if err != nil {
		log.ErrorContext(ctx, "Failed to extract summary from model response",
			"error", err)

		return domain.SummarizationResult{}, errInference
	}

	h.cache.Store(ctx, cacheKey, summary)

	log.InfoContext(ctx, "Summary is generated",
		"summaryLength", len(summary),
		"cacheEnabled", h.cache.Enabled())

	return domain.SummarizationResult{Summary: summary, Cached: false}, nil
}

func (h *Handler) requestLogger(ctx context.Context, req domain.SummarizationRequest) *slog.Logger {
	log := h.log.With(
		"tenantID", req.TenantID,
		"userID", req.UserID,
		"textLength", len(req.Text))

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With("awsRequestID", lc.AwsRequestID)
	}

	return log
}
