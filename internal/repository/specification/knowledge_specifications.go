package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByKnowledgeBaseID struct {
	KnowledgeBaseID uuid.UUID
}

func (s ByKnowledgeBaseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("knowledge_base_id = ?", s.KnowledgeBaseID)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// WithDocuments preloads the documents of each knowledge base.
type WithDocuments struct{}

func (s WithDocuments) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Documents")
}
