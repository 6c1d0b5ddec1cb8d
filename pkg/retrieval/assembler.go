package retrieval

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultBudget is the context character budget used when the caller does not
// configure one.
const DefaultBudget = 3000

// Assembler walks every synced document across the given knowledge bases,
// ranks them, and concatenates the most relevant snippets into a single
// budget-capped context string for prompt injection.
type Assembler struct {
	scorer Scorer
}

func NewAssembler(scorer Scorer) *Assembler {
	return &Assembler{scorer: scorer}
}

type candidate struct {
	kb    *KnowledgeBase
	doc   *Document
	score int
}

// Assemble produces the context bundle for one chat turn. It is a pure
// function of its inputs and never fails: missing document text is treated as
// absence, and when nothing at all is available the bundle falls back to a
// summary of the knowledge bases so the prompt is never empty.
func (a *Assembler) Assemble(query string, kbs []KnowledgeBase, budget int) Bundle {
	if budget <= 0 {
		budget = DefaultBudget
	}

	var candidates []candidate
	for i := range kbs {
		kb := &kbs[i]
		for j := range kb.Documents {
			doc := &kb.Documents[j]
			if !doc.Synced || doc.Text == "" {
				continue
			}
			score := a.scorer.Score(query, doc.Text)
			if score > 0 || doc.Text != "" {
				candidates = append(candidates, candidate{kb: kb, doc: doc, score: score})
			}
		}
	}

	// Stable: equal scores keep the scan order across knowledge bases.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	tokens := Tokenize(query)

	var out strings.Builder
	outLen := 0
	var source *Attribution

	for _, c := range candidates {
		if outLen >= budget {
			break
		}
		remaining := budget - outLen

		var snippet string
		if utf8.RuneCountInString(c.doc.Text) > snippetThreshold {
			snippet = SelectSnippet(c.doc.Text, tokens, remaining)
		} else {
			snippet = truncateRunes(c.doc.Text, remaining)
		}

		block := fmt.Sprintf("\n\n📄 来源文件：%s（知识库：%s）\n%s", c.doc.Name, c.kb.Name, snippet)
		block = truncateRunes(block, budget-outLen)
		out.WriteString(block)
		outLen += utf8.RuneCountInString(block)

		if source == nil && c.score > 0 {
			updated := c.doc.UploadedLabel
			if updated == "" {
				updated = c.kb.UpdatedLabel
			}
			source = &Attribution{
				Name:      c.kb.Name + " - " + c.doc.Name,
				UpdatedAt: updated,
			}
		}
	}

	text := out.String()
	if text == "" {
		return Bundle{Text: a.fallbackSummary(kbs)}
	}

	return Bundle{Text: text, Source: source}
}

// fallbackSummary enumerates the knowledge bases themselves when no document
// contributed any text, so the model still knows what corpora exist.
func (a *Assembler) fallbackSummary(kbs []KnowledgeBase) string {
	names := make([]string, len(kbs))
	for i, kb := range kbs {
		names[i] = fmt.Sprintf("「%s」(%s)", kb.Name, kb.Description)
	}
	return fmt.Sprintf("当前知识库包含：%s。注意：这些知识库中的文件尚未提取到文本内容，或用户上传的文件未包含索引内容。",
		strings.Join(names, "、"))
}
