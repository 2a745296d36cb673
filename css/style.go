// Package css parses computed-style value strings into the structured paint,
// effect and typography primitives of the figma package. Parsers work on
// explicit per-element style snapshots, there is no ambient stylesheet state:
// the browser side has already cascaded and resolved everything.
package css

import (
	"strconv"
	"strings"
)

// Style is an immutable snapshot of an element's computed style, keyed by CSS
// property name. Values are the serialized computed values the browser
// reports ("rgb(255, 0, 0)", "16px", "none").
type Style map[string]string

// Get returns the trimmed value of a property, empty when absent.
func (s Style) Get(name string) string {
	return strings.TrimSpace(s[name])
}

// Px returns the numeric part of a pixel-valued property. The second result
// is false when the property is missing or not a pixel length.
func (s Style) Px(name string) (float64, bool) {
	return ParsePx(s.Get(name))
}

// PxOr returns the pixel value of a property or def when it cannot be parsed.
func (s Style) PxOr(name string, def float64) float64 {
	if v, ok := s.Px(name); ok {
		return v
	}
	return def
}

// ParsePx parses a "<number>px" value. Bare "0" is accepted as zero.
func ParsePx(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "0" {
		return 0, true
	}
	num, ok := strings.CutSuffix(v, "px")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// splitTopLevel splits s on sep at parenthesis depth zero, so commas inside
// nested color functions do not fragment the list. Empty fragments are
// dropped and the rest trimmed.
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		begin int
	)
	flush := func(end int) {
		if p := strings.TrimSpace(s[begin:end]); p != "" {
			parts = append(parts, p)
		}
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				flush(i)
				begin = i + 1
			}
		}
	}
	flush(len(s))
	return parts
}

// balancedArg returns the argument list of the function call starting at the
// opening parenthesis s[open] and whether the call is properly closed.
func balancedArg(s string, open int) (string, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[open+1 : i], true
			}
		}
	}
	return "", false
}
