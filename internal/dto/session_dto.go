package dto

import (
	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Mode          string `json:"mode" form:"mode" validate:"required"`
	Topic         string `json:"topic" form:"topic" validate:"required"`
	CustomContext string `json:"custom_context" form:"custom_context"`
}

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
}

type AnalyzeTextRequest struct {
	Transcript string `json:"transcript" form:"transcript" validate:"required"`
}

// UploadedDocument is one expert-document upload decoupled from the HTTP
// layer. Data is the raw file content; extraction happens in the service.
type UploadedDocument struct {
	Name        string
	ContentType string
	Data        []byte
}

type UploadDocumentsResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
