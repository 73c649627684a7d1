package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// fillerPrefix matches leading filler phrases commonly spoken before the
// actual task ("i need to buy milk", "todo: water the plants").
var fillerPrefix = regexp.MustCompile(`(?i)^(i need to|i have to|i must|i should|todo:|task:)`)

// separators split one utterance into independent fragments.
var separators = regexp.MustCompile(`(?i)\s+and\s+|\s*,\s*|\s+then\s+|\s*;\s*`)

// Split deterministically breaks a free-form utterance into task titles:
// strip a filler prefix, split on separators, trim and capitalize each
// fragment, drop empties. When nothing survives the split the whole trimmed
// input is returned as a single element, so Split("") yields [""].
func Split(text string) []string {
	text = strings.TrimSpace(fillerPrefix.ReplaceAllString(text, ""))

	var titles []string
	for _, fragment := range separators.Split(text, -1) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		titles = append(titles, capitalize(fragment))
	}

	if len(titles) == 0 {
		return []string{text}
	}
	return titles
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
