package search

import (
	"strings"
	"unicode"
)

// Analyze lowercases text and returns its terms in order: runs of at least
// two letters, digits or underscores, with English stop words removed.
// Duplicates are kept so callers can count them.
func Analyze(text string) []string {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	out := make([]string, 0, 8)
	b := strings.Builder{}
	runes := 0
	flush := func() {
		if runes >= 2 {
			w := b.String()
			if !IsStopWord(w) {
				out = append(out, w)
			}
		}
		b.Reset()
		runes = 0
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' {
			b.WriteRune(r)
			runes++
			continue
		}
		flush()
	}
	flush()
	return out
}

// QueryText joins user skills into the text that is vectorized for a query.
func QueryText(skills []string) string {
	return strings.Join(skills, ", ")
}
