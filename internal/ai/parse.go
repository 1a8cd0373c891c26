package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON means the model response contained no JSON object at all.
var ErrNoJSON = errors.New("no JSON object found in response")

// ExtractJSON returns the substring from the first '{' through the last
// '}' of free-form model output. Models routinely wrap JSON in prose or
// markdown fences, so this is deliberately permissive.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

// ParseStructured locates the JSON object inside free-form model output
// and decodes it into T. All AI-backed operations share this one parser so
// the parse-or-fallback contract is tested in a single place.
func ParseStructured[T any](text string) (T, error) {
	var out T
	raw, err := ExtractJSON(text)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, fmt.Errorf("decode model response: %w", err)
	}
	return out, nil
}
