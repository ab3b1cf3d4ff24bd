// Package extract recovers a JSON object from free-form generative-model
// output. Models are asked for bare JSON but routinely wrap it in markdown
// fences or surround it with prose; this package owns all of that recovery
// so call sites only deal in parsed objects and typed failures.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedOutputError means no parseable JSON object could be recovered.
// Raw carries the full model output for diagnostics.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// IncompleteOutputError means the object parsed but lacks required fields.
type IncompleteOutputError struct {
	Missing []string
}

func (e *IncompleteOutputError) Error() string {
	return fmt.Sprintf("model output missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Object extracts and parses the JSON object embedded in raw, then checks
// that every required field is present. Candidate substrings are tried in
// priority order:
//
//  1. a ```json fence: everything between the language tag and the closing fence
//  2. any ``` fence: everything between the first line break after the opening
//     fence and the closing fence
//  3. the span from the first '{' to the last '}'
//
// Parse failures return *MalformedOutputError; missing fields return
// *IncompleteOutputError. No retries, no partial objects.
func Object(raw string, required []string) (map[string]any, error) {
	candidate, err := jsonCandidate(raw)
	if err != nil {
		return nil, &MalformedOutputError{Raw: raw, Err: err}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, &MalformedOutputError{Raw: raw, Err: err}
	}

	var missing []string
	for _, field := range required {
		if _, ok := obj[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteOutputError{Missing: missing}
	}

	return obj, nil
}

// jsonCandidate locates the most likely JSON substring in raw.
func jsonCandidate(raw string) (string, error) {
	if start := strings.Index(raw, "```json"); start >= 0 {
		body := raw[start+len("```json"):]
		if end := strings.Index(body, "```"); end >= 0 {
			return strings.TrimSpace(body[:end]), nil
		}
		return strings.TrimSpace(body), nil
	}

	if start := strings.Index(raw, "```"); start >= 0 {
		body := raw[start+len("```"):]
		// Skip the opening fence's line (it may carry a language tag).
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		}
		if end := strings.Index(body, "```"); end >= 0 {
			return strings.TrimSpace(body[:end]), nil
		}
		return strings.TrimSpace(body), nil
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in output")
	}
	return raw[start : end+1], nil
}

// String reads a required string field from an extracted object.
func String(obj map[string]any, field string) string {
	if s, ok := obj[field].(string); ok {
		return s
	}
	return ""
}

// StringSlice reads a JSON string array from an extracted object.
func StringSlice(obj map[string]any, field string) []string {
	items, ok := obj[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Float reads a numeric field, returning fallback when absent or non-numeric.
func Float(obj map[string]any, field string, fallback float64) float64 {
	if f, ok := obj[field].(float64); ok {
		return f
	}
	return fallback
}
