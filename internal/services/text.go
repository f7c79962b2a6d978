package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Drafted text is plain; any markup the model adds is stripped.
var plainText = bluemonday.StrictPolicy()

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
