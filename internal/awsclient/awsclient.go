package awsclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/trace"
)

// LoadConfig builds the shared AWS config once per process. Retries are
// disabled: a failed call is reported to the caller as-is. AWS calls are
// traced when tp is non-nil.
func LoadConfig(ctx context.Context, region string, tp trace.TracerProvider) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if region = strings.TrimSpace(region); region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}

	Instrument(&cfg, tp)

	return cfg, nil
}

// Instrument adds a span per AWS API call, recorded by tp. A nil tp leaves
// cfg untouched.
func Instrument(cfg *aws.Config, tp trace.TracerProvider) {
	if tp == nil {
		return
	}

	otelaws.AppendMiddlewares(&cfg.APIOptions, otelaws.WithTracerProvider(tp))
}

// ErrorCode returns the service error code (e.g. "NoSuchKey") or "" when err
// is not an AWS API error.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}

	return ""
}
