package summarizer

import (
	"encoding/json"
	"fmt"
)

// Extractor pulls summary text out of a payload, returning "" when the shape
// does not match. An error means the shape is recognized but unusable.
type Extractor func(p Payload) (string, error)

// Extractors are tried in order; the first non-empty result wins.
var Extractors = []Extractor{
	CompletionText,
	FirstResultOutputText,
}

// ExtractSummary never returns "" for a non-empty payload: when no extractor
// matches, the payload itself is stringified. Errors wrap ErrInference.
func ExtractSummary(p Payload) (string, error) {
	for _, extract := range Extractors {
		s, err := extract(p)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
	}

	return Stringify(p), nil
}

// CompletionText reads {"completion": "..."}.
func CompletionText(p Payload) (string, error) {
	s, _ := p["completion"].(string)

	return s, nil
}

// FirstResultOutputText reads {"results": [{"outputText": "..."}]}. A
// "results" field that is not a non-empty list of objects is an error; a
// first result without outputText is not.
func FirstResultOutputText(p Payload) (string, error) {
	raw, ok := p["results"]
	if !ok {
		return "", nil
	}

	results, ok := raw.([]any)
	if !ok {
		return "", fmt.Errorf("%w: results is %T, not a list", ErrInference, raw)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: results is empty", ErrInference)
	}

	first, ok := results[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: first result is %T, not an object", ErrInference, results[0])
	}

	s, _ := first["outputText"].(string)

	return s, nil
}

func Stringify(p Payload) string {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprint(map[string]any(p))
	}

	return string(b)
}
