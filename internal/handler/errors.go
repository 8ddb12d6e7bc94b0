package handler

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned by Summarize.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrMalformedInput  = errors.New("malformed input")
	ErrInferenceFailed = errors.New("inference failed")
)

var (
	errNoTenant    = newRequestError(ErrUnauthorized, "Unauthorized: no tenant ID")
	errInvalidJSON = newRequestError(ErrMalformedInput, "Invalid JSON in request body")
	errMissingText = newRequestError(ErrMalformedInput, "Missing 'text' to summarize")
	errInference   = newRequestError(ErrInferenceFailed, "Model inference failed")
)

const internalErrorMessage = "Internal server error"

// requestError carries the message that is safe to return to the caller.
type requestError struct {
	kind    error
	message string
}

func newRequestError(kind error, message string) *requestError {
	return &requestError{kind: kind, message: message}
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *requestError) Unwrap() error {
	return e.kind
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrMalformedInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-facing message for err. Unclassified
// errors never leak their text.
func PublicMessage(err error) string {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.message
	}

	return internalErrorMessage
}
