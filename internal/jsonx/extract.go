// Package jsonx recovers JSON values from LLM chat responses. Models wrap
// otherwise-correct JSON in prose and markdown fences, leave trailing commas,
// embed raw newlines in string values, and forget to escape inner quotes;
// Extract runs a fixed repair pipeline over the raw text until one of the
// parse attempts succeeds.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// previewLimit caps how much of the failing text ends up in the error, so a
// huge malformed response doesn't flood the logs.
const previewLimit = 500

// ExtractionError is returned when the text could not be parsed after every
// repair pass. Preview holds the text as it stood after the final pass,
// truncated to previewLimit characters.
type ExtractionError struct {
	Err     error
	Preview string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("json extraction failed: %v (preview: %s)", e.Err, e.Preview)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extract parses a JSON value out of raw text. The input is never modified;
// each repair pass derives a new candidate string. Repair only runs when the
// previous parse attempt failed, so well-behaved input pays for a single
// bracket scan and one json.Unmarshal.
//
// Pipeline: boundary trim -> parse -> trailing-comma repair -> control-char
// repair -> parse -> quote repair -> parse -> *ExtractionError.
func Extract(raw string) (any, error) {
	text := extractBoundaries(raw)

	if v, err := parse(text); err == nil {
		return v, nil
	}

	text = stripTrailingCommas(text)
	text = escapeControlChars(text)
	if v, err := parse(text); err == nil {
		return v, nil
	}

	text = escapeInnerQuotes(text)
	v, err := parse(text)
	if err != nil {
		return nil, &ExtractionError{Err: err, Preview: preview(text)}
	}
	return v, nil
}

// ExtractTo runs Extract and decodes the recovered value into v through a
// marshal round trip, so callers get typed structs while still benefiting
// from the repair passes and string normalization.
func ExtractTo(raw string, v any) error {
	val, err := Extract(raw)
	if err != nil {
		return err
	}
	b, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("re-marshal extracted value: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode extracted value: %w", err)
	}
	return nil
}

func parse(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return normalizeValue(v), nil
}

// extractBoundaries trims the text to the outermost bracket/brace span.
// Models reliably produce correct JSON inside incorrect surroundings
// ("Here is the JSON:", closing fences, "Hope this helps!"), so the span
// between the first opener and the last closer is the payload. With no
// brackets at all the text passes through untouched and the parse attempt
// fails on its own.
func extractBoundaries(text string) string {
	start := -1
	for _, c := range []string{"[", "{"} {
		if i := strings.Index(text, c); i >= 0 && (start < 0 || i < start) {
			start = i
		}
	}

	end := -1
	for _, c := range []string{"]", "}"} {
		if i := strings.LastIndex(text, c); i > end {
			end = i
		}
	}

	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLimit])
}
