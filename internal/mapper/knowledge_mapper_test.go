package mapper

import (
	"testing"
	"time"

	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKnowledgeBaseToEntity(t *testing.T) {
	m := NewKnowledgeMapper()
	now := time.Now()
	kbId := uuid.New()

	kb := &model.KnowledgeBase{
		Id:           kbId,
		Name:         "公司政策",
		Description:  "包含人力资源、报销流程等核心文档",
		Icon:         "📄",
		Color:        "from-blue-500 to-cyan-400",
		UpdatedLabel: "2小时前",
		CreatedAt:    now,
		UpdatedAt:    now,
		Documents: []model.Document{
			{Id: uuid.New(), KnowledgeBaseId: kbId, Name: "员工手册.pdf", Status: "synced", UploadedLabel: "1天前"},
		},
	}

	got := m.KnowledgeBaseToEntity(kb)
	require.NotNil(t, got)

	assert.Equal(t, kbId, got.Id)
	assert.Equal(t, "公司政策", got.Name)
	assert.Equal(t, "2小时前", got.UpdatedLabel)
	assert.False(t, got.IsDeleted)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, now, *got.UpdatedAt)

	require.Len(t, got.Documents, 1)
	assert.Equal(t, entity.DocumentStatusSynced, got.Documents[0].Status)
	assert.Equal(t, "员工手册.pdf", got.Documents[0].Name)
}

func TestKnowledgeBaseToEntitySoftDelete(t *testing.T) {
	m := NewKnowledgeMapper()
	deletedAt := time.Now()

	kb := &model.KnowledgeBase{
		Id:        uuid.New(),
		Name:      "售后流程",
		DeletedAt: gorm.DeletedAt{Time: deletedAt, Valid: true},
	}

	got := m.KnowledgeBaseToEntity(kb)
	require.NotNil(t, got)
	assert.True(t, got.IsDeleted)
	require.NotNil(t, got.DeletedAt)
	assert.Equal(t, deletedAt, *got.DeletedAt)
	assert.Nil(t, got.UpdatedAt, "zero UpdatedAt maps to nil")
}

func TestKnowledgeBaseToEntityNil(t *testing.T) {
	assert.Nil(t, NewKnowledgeMapper().KnowledgeBaseToEntity(nil))
}

func TestDocumentRoundTrip(t *testing.T) {
	m := NewKnowledgeMapper()
	now := time.Now()

	doc := &entity.Document{
		Id:              uuid.New(),
		KnowledgeBaseId: uuid.New(),
		Name:            "API接口集成文档.txt",
		StoredPath:      "uploads/abc.txt",
		Size:            159744,
		Status:          entity.DocumentStatusIndexing,
		UploadedLabel:   "刚刚",
		CreatedAt:       now,
	}

	got := m.DocumentToEntity(m.DocumentToModel(doc))
	require.NotNil(t, got)
	assert.Equal(t, doc.Id, got.Id)
	assert.Equal(t, doc.Status, got.Status)
	assert.Equal(t, doc.StoredPath, got.StoredPath)
	assert.Equal(t, doc.Size, got.Size)
	assert.False(t, got.IsDeleted)
}

func TestDocumentToModelMarksDeleted(t *testing.T) {
	m := NewKnowledgeMapper()

	doc := &entity.Document{
		Id:        uuid.New(),
		Name:      "待删除.pdf",
		IsDeleted: true,
	}

	got := m.DocumentToModel(doc)
	require.NotNil(t, got)
	assert.True(t, got.DeletedAt.Valid, "IsDeleted without timestamp still stamps DeletedAt")
}
