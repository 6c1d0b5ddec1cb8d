package mapper

import (
	"time"

	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/model"

	"gorm.io/gorm"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

// Knowledge Base Mappers

func (m *KnowledgeMapper) KnowledgeBaseToEntity(kb *model.KnowledgeBase) *entity.KnowledgeBase {
	if kb == nil {
		return nil
	}

	var deletedAt *time.Time
	if kb.DeletedAt.Valid {
		t := kb.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !kb.UpdatedAt.IsZero() {
		t := kb.UpdatedAt
		updatedAt = &t
	}

	documents := make([]entity.Document, 0, len(kb.Documents))
	for i := range kb.Documents {
		if doc := m.DocumentToEntity(&kb.Documents[i]); doc != nil {
			documents = append(documents, *doc)
		}
	}

	return &entity.KnowledgeBase{
		Id:           kb.Id,
		Name:         kb.Name,
		Description:  kb.Description,
		Icon:         kb.Icon,
		Color:        kb.Color,
		UpdatedLabel: kb.UpdatedLabel,
		CreatedAt:    kb.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    kb.DeletedAt.Valid,
		Documents:    documents,
	}
}

func (m *KnowledgeMapper) KnowledgeBaseToModel(kb *entity.KnowledgeBase) *model.KnowledgeBase {
	if kb == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if kb.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *kb.DeletedAt, Valid: true}
	} else if kb.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if kb.UpdatedAt != nil {
		updatedAt = *kb.UpdatedAt
	}

	return &model.KnowledgeBase{
		Id:           kb.Id,
		Name:         kb.Name,
		Description:  kb.Description,
		Icon:         kb.Icon,
		Color:        kb.Color,
		UpdatedLabel: kb.UpdatedLabel,
		CreatedAt:    kb.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *KnowledgeMapper) KnowledgeBasesToEntities(kbs []*model.KnowledgeBase) []*entity.KnowledgeBase {
	entities := make([]*entity.KnowledgeBase, len(kbs))
	for i, kb := range kbs {
		entities[i] = m.KnowledgeBaseToEntity(kb)
	}
	return entities
}

// Document Mappers

func (m *KnowledgeMapper) DocumentToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:              d.Id,
		KnowledgeBaseId: d.KnowledgeBaseId,
		Name:            d.Name,
		StoredPath:      d.StoredPath,
		Size:            d.Size,
		Status:          entity.DocumentStatus(d.Status),
		UploadedLabel:   d.UploadedLabel,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       d.DeletedAt.Valid,
	}
}

func (m *KnowledgeMapper) DocumentToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:              d.Id,
		KnowledgeBaseId: d.KnowledgeBaseId,
		Name:            d.Name,
		StoredPath:      d.StoredPath,
		Size:            d.Size,
		Status:          string(d.Status),
		UploadedLabel:   d.UploadedLabel,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *KnowledgeMapper) DocumentsToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.DocumentToEntity(d)
	}
	return entities
}

// Document Content Mappers

func (m *KnowledgeMapper) DocumentContentToEntity(c *model.DocumentContent) *entity.DocumentContent {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.DocumentContent{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *KnowledgeMapper) DocumentContentToModel(c *entity.DocumentContent) *model.DocumentContent {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.DocumentContent{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}
