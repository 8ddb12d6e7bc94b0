package awsclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestErrorCode(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}

	assert.Equal(t, "NoSuchKey", ErrorCode(apiErr))
	assert.Equal(t, "NoSuchKey", ErrorCode(fmt.Errorf("get object: %w", apiErr)))
	assert.Empty(t, ErrorCode(errors.New("dial tcp: refused")))
	assert.Empty(t, ErrorCode(nil))
}

func testConfig(endpoint string) aws.Config {
	return aws.Config{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
		Retryer:      func() aws.Retryer { return aws.NopRetryer{} },
		BaseEndpoint: aws.String(endpoint),
	}
}

func getTenantItem(t *testing.T, cfg aws.Config) {
	t.Helper()

	_, err := dynamodb.NewFromConfig(cfg).GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String("tenant-config"),
		Key: map[string]types.AttributeValue{
			"TenantID": &types.AttributeValueMemberS{Value: "acme"},
		},
	})
	require.NoError(t, err)
}

func TestInstrumentRecordsAWSCallSpans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/x-amz-json-1.0")
		_, _ = io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	cfg := testConfig(srv.URL)
	Instrument(&cfg, tp)
	getTenantItem(t, cfg)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "GetItem")
}

func TestInstrumentWithoutProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/x-amz-json-1.0")
		_, _ = io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	before := len(cfg.APIOptions)

	Instrument(&cfg, nil)
	assert.Len(t, cfg.APIOptions, before)

	getTenantItem(t, cfg)
}
