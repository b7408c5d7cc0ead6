package formbind

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sanitizeString removes characters that could be used in injection attacks.
// It prevents CRLF injection, null byte attacks, and filters invalid Unicode
// sequences while preserving printable content, including tabs.
func sanitizeString(value string) string {
	value = strings.ReplaceAll(value, "\x00", "")

	// Strip carriage return and line feed to prevent header injection
	// when bound values are echoed into responses.
	value = strings.ReplaceAll(value, "\r\n", "")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\n", "")

	var builder strings.Builder
	builder.Grow(len(value))

	for _, r := range value {
		if r == '\t' || r >= ' ' || unicode.IsGraphic(r) {
			if utf8.ValidRune(r) {
				builder.WriteRune(r)
			}
		}
	}

	return builder.String()
}
