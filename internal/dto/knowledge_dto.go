package dto

import "github.com/google/uuid"

type CreateKnowledgeBaseRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

type KnowledgeBaseResponse struct {
	Id          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Color       string        `json:"color"`
	FileCount   int           `json:"fileCount"`
	UpdatedAt   string        `json:"updatedAt"`
	Files       []DocumentDTO `json:"files"`
}

type DocumentDTO struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt string    `json:"uploadedAt"`
	Status     string    `json:"status"`
}

type DocumentContentResponse struct {
	Id     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
	// Preview is the first slice of the extracted text, not the whole
	// document.
	Preview   string `json:"preview"`
	Truncated bool   `json:"truncated"`
}

// IndexDocumentMessage is the payload queued for the background indexing
// worker after an upload.
type IndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
