package validators

import (
	"net/http"
	"strings"
	"unicode"
)

// SanitizeString trims input, folds internal whitespace runs and control
// characters to a single space, and caps the result at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	out := strings.Join(fields, " ")
	if maxLen > 0 {
		if runes := []rune(out); len(runes) > maxLen {
			out = strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return out
}

// SanitizeQuery reads a query parameter through SanitizeString.
func SanitizeQuery(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}
