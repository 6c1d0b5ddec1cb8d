package textstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ContentSource loads the extracted text of one document. An absent document
// yields an empty string, not an error.
type ContentSource interface {
	LoadContent(ctx context.Context, documentID uuid.UUID) (string, error)
}

// Store is the Text Store accessor used by retrieval: extracted document text
// behind an in-memory cache, since the same documents are re-read on every
// chat turn.
type Store struct {
	source ContentSource
	cache  *cache.Cache
}

func NewStore(source ContentSource) *Store {
	return &Store{
		source: source,
		cache:  cache.New(10*time.Minute, 30*time.Minute),
	}
}

// Text returns the document's extracted text, or empty when the document has
// no content or loading fails. Missing content is absence, not an error; the
// retrieval core treats such documents as empty candidates.
func (s *Store) Text(ctx context.Context, documentID uuid.UUID) string {
	key := documentID.String()
	if cached, found := s.cache.Get(key); found {
		return cached.(string)
	}

	content, err := s.source.LoadContent(ctx, documentID)
	if err != nil {
		return ""
	}

	s.cache.Set(key, content, cache.DefaultExpiration)
	return content
}

// Invalidate drops the cached text after re-indexing.
func (s *Store) Invalidate(documentID uuid.UUID) {
	s.cache.Delete(documentID.String())
}
