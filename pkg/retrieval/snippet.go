package retrieval

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// Documents at or under this many runes are used whole.
	snippetThreshold = 1500
	// Paragraphs whose trimmed length is at or under this are treated as
	// noise: headers, page numbers, stray lines from extraction.
	minParagraphRunes = 20
	// At most this many paragraphs survive selection.
	maxParagraphs = 5
)

var paragraphSplit = regexp.MustCompile(`\n+`)

// SelectSnippet extracts the most relevant paragraphs of a long document.
// Short documents are returned unmodified. Paragraphs are scored by how many
// distinct query tokens they contain (a repeated token still counts once,
// unlike the document-level score). With no query tokens every paragraph is
// eligible. The result is hard-capped at budget runes.
func SelectSnippet(documentText string, queryTokens []string, budget int) string {
	if utf8.RuneCountInString(documentText) <= snippetThreshold {
		return truncateRunes(documentText, budget)
	}

	var paragraphs []string
	for _, p := range paragraphSplit.Split(documentText, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(p)) > minParagraphRunes {
			paragraphs = append(paragraphs, p)
		}
	}

	lowerTokens := make([]string, len(queryTokens))
	for i, t := range queryTokens {
		lowerTokens[i] = strings.ToLower(t)
	}

	type scoredParagraph struct {
		text  string
		score int
	}

	var kept []scoredParagraph
	for _, p := range paragraphs {
		lowerP := strings.ToLower(p)
		score := 0
		for _, t := range lowerTokens {
			if strings.Contains(lowerP, t) {
				score++
			}
		}
		if score > 0 || len(queryTokens) == 0 {
			kept = append(kept, scoredParagraph{text: p, score: score})
		}
	}

	// Stable: paragraphs with equal score keep their order in the source.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if len(kept) > maxParagraphs {
		kept = kept[:maxParagraphs]
	}

	selected := make([]string, len(kept))
	for i, p := range kept {
		selected[i] = p.text
	}

	snippet := strings.Join(selected, "\n")
	if snippet == "" {
		snippet = truncateRunes(documentText, snippetThreshold)
	}

	return truncateRunes(snippet, budget)
}

// truncateRunes cuts s to at most n runes. No attempt is made to avoid
// mid-word cuts.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
