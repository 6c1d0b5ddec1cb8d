package mapper

import (
	"time"

	"kb-assistant-be/internal/entity"
	"kb-assistant-be/internal/model"

	"gorm.io/gorm"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var deletedAt *time.Time
	if u.DeletedAt.Valid {
		t := u.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.User{
		Id:           u.Id,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         entity.UserRole(u.Role),
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    u.DeletedAt.Valid,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if u.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *u.DeletedAt, Valid: true}
	} else if u.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}

	return &model.User{
		Id:           u.Id,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         string(u.Role),
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
