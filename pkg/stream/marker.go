package stream

import (
	"regexp"
	"strings"

	"kb-assistant-be/pkg/retrieval"
)

// The model is instructed to tag its perceived source with a trailing
// 【来源：<label>】 marker. The marker is part of the prompt contract, parsed
// here and stripped from user-visible output.
var markerPattern = regexp.MustCompile(`【来源：([^】]+)】`)

// KnowledgeBaseRef is the minimal knowledge-base view needed to resolve a
// marker label back to a known corpus.
type KnowledgeBaseRef struct {
	Name         string
	UpdatedLabel string
}

// ExtractMarker returns the label of the first source marker in text.
func ExtractMarker(text string) (string, bool) {
	m := markerPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// StripMarkers removes every source marker occurrence from text.
func StripMarkers(text string) string {
	return strings.TrimSpace(markerPattern.ReplaceAllString(text, ""))
}

// ResolveSource maps a marker label onto a known knowledge base. A knowledge
// base matches when its name is a substring of the label or vice versa; the
// first match wins. An unknown label is kept verbatim with a placeholder
// updated-label.
func ResolveSource(label string, kbs []KnowledgeBaseRef) retrieval.Attribution {
	for _, kb := range kbs {
		if strings.Contains(kb.Name, label) || strings.Contains(label, kb.Name) {
			return retrieval.Attribution{Name: kb.Name, UpdatedAt: kb.UpdatedLabel}
		}
	}
	return retrieval.Attribution{Name: label, UpdatedAt: "刚刚更新"}
}
