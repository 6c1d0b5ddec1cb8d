package dto

import (
	"github.com/google/uuid"

	"kb-assistant-be/pkg/retrieval"
)

type CreateSessionResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type ChatSessionResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"messageCount"`
	UpdatedAt    string    `json:"updatedAt"`
}

type ChatSessionDetailResponse struct {
	Id       uuid.UUID        `json:"id"`
	Title    string           `json:"title"`
	Messages []ChatMessageDTO `json:"messages"`
}

type ChatMessageDTO struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	CreatedAt string                 `json:"createdAt"`
	Source    *retrieval.Attribution `json:"source,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}
