package jsonx

import (
	"regexp"
	"strings"
	"unicode"
)

// scanState is the automaton the character-level repair passes share: the
// cursor is outside any string literal, inside one, or sitting on the
// character right after a backslash.
type scanState int

const (
	stateOutside scanState = iota
	stateInString
	stateEscaped
)

// A comma followed by nothing but whitespace and a closer is always a
// trailing comma, never legal JSON content, so this needs no string
// awareness.
var trailingCommaRe = regexp.MustCompile(`,(\s*[\]}])`)

// stripTrailingCommas removes commas whose next significant character is a
// closing bracket or brace. Only the comma goes; intervening whitespace is
// kept as-is.
func stripTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}

// escapeControlChars rewrites raw control characters inside string literals
// to their escaped forms. Models emit multi-line answers with literal
// newlines and tabs inside string values; JSON requires \n, \r and \t.
// Control characters with no short escape are dropped. Everything outside
// string literals passes through unchanged.
func escapeControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	state := stateOutside
	for _, r := range text {
		switch state {
		case stateOutside:
			if r == '"' {
				state = stateInString
			}
			b.WriteRune(r)
		case stateInString:
			switch {
			case r == '\\':
				state = stateEscaped
				b.WriteRune(r)
			case r == '"':
				state = stateOutside
				b.WriteRune(r)
			case r == '\n':
				b.WriteString(`\n`)
			case r == '\r':
				b.WriteString(`\r`)
			case r == '\t':
				b.WriteString(`\t`)
			case r < 0x20:
				// no short escape, drop it
			default:
				b.WriteRune(r)
			}
		case stateEscaped:
			state = stateInString
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeInnerQuotes handles the model writing an unescaped quotation mark
// inside a string value, e.g. {"answer": "Use "strict mode" in JS"}. A quote
// met while inside a string only terminates it when the next significant
// character is structural (, } ] :) or the input ends; otherwise the quote is
// part of the content and gets escaped. In well-formed JSON a real terminator
// is almost always followed by a structural character, which is what makes
// the lookahead reliable for the common mistake. Strings that legitimately
// end right before free text defeat it; that is an accepted limitation.
func escapeInnerQuotes(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	state := stateOutside
	for i, r := range runes {
		switch state {
		case stateOutside:
			if r == '"' {
				state = stateInString
			}
			b.WriteRune(r)
		case stateInString:
			switch {
			case r == '\\':
				state = stateEscaped
				b.WriteRune(r)
			case r == '"':
				if terminatesString(runes, i+1) {
					state = stateOutside
					b.WriteRune(r)
				} else {
					b.WriteString(`\"`)
				}
			default:
				b.WriteRune(r)
			}
		case stateEscaped:
			state = stateInString
			b.WriteRune(r)
		}
	}
	return b.String()
}

// terminatesString reports whether a quote at position pos-1 closes the
// string, judged by the next non-whitespace rune.
func terminatesString(runes []rune, pos int) bool {
	for i := pos; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		switch runes[i] {
		case ',', '}', ']', ':':
			return true
		}
		return false
	}
	// end of input
	return true
}
