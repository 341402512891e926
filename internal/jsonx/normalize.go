package jsonx

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// normalizeValue walks a parsed JSON value and cleans every string in it for
// markdown rendering. Applied to all strings unconditionally, titles
// included; downstream renders against this behavior.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeValue(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeValue(item)
		}
		return val
	case string:
		return normalizeMarkdown(val)
	default:
		return v
	}
}

// normalizeMarkdown pads fenced code blocks with exactly one blank line on
// each side and collapses runs of 3+ newlines down to a single blank line.
// Idempotent: the padding inserted by one application is collapsed back by
// the next.
func normalizeMarkdown(s string) string {
	s = codeFenceRe.ReplaceAllStringFunc(s, func(fence string) string {
		return "\n\n" + fence + "\n\n"
	})
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
