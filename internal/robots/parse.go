// SPDX-License-Identifier: AGPL-3.0-or-later
package robots

import (
	"strings"
)

// Line is one "Field: value" directive of a robots.txt file.
type Line struct {
	Number int
	// Field is lower-cased ("user-agent", "disallow", ...).
	Field string
	Value string
}

// ParseLines extracts the directive lines of text. Comments, blank lines and
// lines without a colon are skipped. Inline "#" comments are stripped.
func ParseLines(text string) []Line {
	var lines []Line
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if idx := strings.Index(raw, "#"); idx >= 0 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		field, value, ok := strings.Cut(raw, ":")
		if !ok {
			continue
		}
		lines = append(lines, Line{
			Number: i + 1,
			Field:  strings.ToLower(strings.TrimSpace(field)),
			Value:  strings.TrimSpace(value),
		})
	}
	return lines
}

// Values returns the values of every line with the given field, in order.
func Values(lines []Line, field string) []string {
	field = strings.ToLower(field)
	var out []string
	for _, l := range lines {
		if l.Field == field {
			out = append(out, l.Value)
		}
	}
	return out
}
