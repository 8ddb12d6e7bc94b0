package prompt

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"nexus/internal/awsclient"
)

const (
	Placeholder = "{{text}}"

	FallbackTemplate = "Summarize the following:\n\n" + Placeholder + "\n\nSummary:"
)

// ObjectStore fetches raw template bytes.
type ObjectStore interface {
	Get(ctx context.Context, bucket string, key string) ([]byte, error)
}

type Loader struct {
	store ObjectStore
	log   *slog.Logger
}

func NewLoader(store ObjectStore, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}

	return &Loader{store: store, log: log}
}

// Load returns the template stored at bucket/key, or FallbackTemplate when it
// cannot be read or decoded.
func (l *Loader) Load(ctx context.Context, bucket string, key string) string {
	if l.store == nil {
		return FallbackTemplate
	}

	body, err := l.store.Get(ctx, bucket, key)
	if err == nil && !utf8.Valid(body) {
		err = errors.New("template is not valid UTF-8")
	}
	if err != nil {
		l.log.WarnContext(ctx, "Failed to load prompt template so fallback will be used",
			"error", err,
			"errorCode", awsclient.ErrorCode(err),
			"bucket", bucket,
			"key", key)

		return FallbackTemplate
	}

	return string(body)
}

// Compose replaces every placeholder with text verbatim.
func Compose(template string, text string) string {
	return strings.ReplaceAll(template, Placeholder, text)
}
