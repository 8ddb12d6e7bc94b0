package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxTemplateBytes = 1 << 20

// GetObjectAPI is the subset of *s3.Client used by S3Store.
type GetObjectAPI interface {
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

type S3Store struct {
	client GetObjectAPI
}

func NewS3Store(client GetObjectAPI) (*S3Store, error) {
	if client == nil {
		return nil, errors.New("S3 client is nil")
	}

	return &S3Store{client: client}, nil
}

func (s *S3Store) Get(ctx context.Context, bucket string, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object (bucket = %s, key = %s): %w", bucket, key, err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(out.Body, maxTemplateBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read object (bucket = %s, key = %s): %w", bucket, key, err)
	}

	if len(body) > maxTemplateBytes {
		return nil, fmt.Errorf("object is larger than %d bytes (bucket = %s, key = %s)",
			maxTemplateBytes, bucket, key)
	}

	return body, nil
}
