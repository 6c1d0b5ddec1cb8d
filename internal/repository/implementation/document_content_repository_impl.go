package implementation

import (
	"context"
	"errors"

	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/mapper"
	"kb-assistant-be/internal/model"
	"kb-assistant-be/internal/repository/contract"
	"kb-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentContentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewDocumentContentRepository(db *gorm.DB) contract.DocumentContentRepository {
	return &DocumentContentRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *DocumentContentRepositoryImpl) Upsert(ctx context.Context, content *entity.DocumentContent) error {
	m := r.mapper.DocumentContentToModel(content)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*content = *r.mapper.DocumentContentToEntity(m)
	return nil
}

func (r *DocumentContentRepositoryImpl) FindByDocumentId(ctx context.Context, documentId uuid.UUID) (*entity.DocumentContent, error) {
	var m model.DocumentContent
	query := specification.ByDocumentID{DocumentID: documentId}.Apply(r.db.WithContext(ctx))
	err := query.First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DocumentContentToEntity(&m), nil
}

func (r *DocumentContentRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	query := specification.ByDocumentID{DocumentID: documentId}.Apply(r.db.WithContext(ctx))
	return query.Delete(&model.DocumentContent{}).Error
}
