package sources

import (
	"net/url"
	"strings"
)

// CleanText normalizes raw extracted text: trims surrounding whitespace,
// replaces newlines with spaces, and collapses double spaces in a single
// left-to-right pass.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "  ", " ")
}

// resolveLink makes href absolute against base. Already-absolute links pass
// through untouched; unparseable input yields "".
func resolveLink(href, base string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
