package retrieval

// Document is one retrievable unit inside a knowledge base. Text is the
// previously extracted plain text and may be empty when extraction has not
// produced anything for it.
type Document struct {
	ID            string
	Name          string
	UploadedLabel string
	Synced        bool
	Text          string
}

// KnowledgeBase is a named retrieval corpus.
type KnowledgeBase struct {
	Name         string
	Description  string
	UpdatedLabel string
	Documents    []Document
}

// Attribution names the source a generated answer was grounded on.
type Attribution struct {
	Name      string `json:"name"`
	UpdatedAt string `json:"updatedAt"`
}

// Bundle is the assembled, budget-capped context injected into the prompt.
// Source is nil when no document scored above zero.
type Bundle struct {
	Text   string
	Source *Attribution
}

// Scorer ranks one document's text against a query. The keyword scorer is the
// baseline contract; an embedding-based ranker can replace it without touching
// the assembler.
type Scorer interface {
	Score(query, documentText string) int
}
