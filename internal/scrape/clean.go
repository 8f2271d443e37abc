package scrape

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	urlRegex     = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
)

// Clean converts page text to a single line of plain text: entities are
// unescaped, leftover tags and URLs dropped, and whitespace collapsed.
func Clean(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, " ")
	plain = urlRegex.ReplaceAllString(plain, " ")
	return strings.Join(strings.Fields(plain), " ")
}
