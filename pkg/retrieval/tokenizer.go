package retrieval

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Both the ASCII and the full-width CJK sentence punctuation used in queries.
const queryPunctuation = "，。！？,.?!"

// Tokenize splits a query on whitespace and sentence punctuation and drops
// single-rune tokens. Single characters are noise for substring matching:
// CJK text packs one ideogram per rune, so a one-rune token would match almost
// everywhere.
func Tokenize(query string) []string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(queryPunctuation, r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
