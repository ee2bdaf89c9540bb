package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// tokenSet lowercases, NFC-normalizes, and splits text on non-letter,
// non-digit runes, then removes stop words. Tokens shorter than two runes
// carry no signal and are dropped.
func tokenSet(text string, stopwords map[string]struct{}) map[string]struct{} {
	text = norm.NFC.String(strings.ToLower(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if stopwords != nil {
			if _, drop := stopwords[f]; drop {
				continue
			}
		}
		out[f] = struct{}{}
	}
	return out
}
