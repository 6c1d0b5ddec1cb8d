package retrieval

import "strings"

// KeywordScorer scores a document by keyword occurrence count: the sum of
// case-insensitive substring occurrences of every query token. A token may
// match inside a larger word; there is no word-boundary logic.
type KeywordScorer struct{}

var _ Scorer = KeywordScorer{}

func NewKeywordScorer() KeywordScorer {
	return KeywordScorer{}
}

func (KeywordScorer) Score(query, documentText string) int {
	if documentText == "" {
		return 0
	}

	lowerText := strings.ToLower(documentText)

	score := 0
	for _, token := range Tokenize(query) {
		score += strings.Count(lowerText, strings.ToLower(token))
	}
	return score
}
