package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id           uuid.UUID
	Username     string
	PasswordHash string
	Name         string
	Role         UserRole
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
