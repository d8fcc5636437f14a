package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"ai-presentation-coach-be/internal/constant"
	"ai-presentation-coach-be/internal/dto"
	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/internal/pkg/logger"
	"ai-presentation-coach-be/internal/pkg/serverutils"
	"ai-presentation-coach-be/internal/store"
	"ai-presentation-coach-be/pkg/events"
	pkgNats "ai-presentation-coach-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, id uuid.UUID) (*store.Summary, error)
	UploadExpertDocuments(ctx context.Context, id uuid.UUID, docs []dto.UploadedDocument) (*dto.UploadDocumentsResponse, error)
}

type sessionService struct {
	sessionStore *store.SessionStore
	natsPub      *pkgNats.Publisher
	logger       logger.ILogger
}

func NewSessionService(sessionStore *store.SessionStore, natsPub *pkgNats.Publisher, log logger.ILogger) ISessionService {
	return &sessionService{
		sessionStore: sessionStore,
		natsPub:      natsPub,
		logger:       log,
	}
}

func (ss *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		return nil, serverutils.NewValidationError(err.Error())
	}

	id := uuid.New()
	if _, err := ss.sessionStore.Create(id, mode, req.Topic, req.CustomContext, nil); err != nil {
		return nil, serverutils.NewConflictError(err.Error())
	}

	ss.logger.Info("Session", "Session created", map[string]interface{}{
		"session_id": id.String(),
		"mode":       string(mode),
		"topic":      req.Topic,
	})
	ss.publishLifecycleEvent(ctx, constant.EventSessionCreated, id)

	return &dto.CreateSessionResponse{SessionId: id, Status: "created"}, nil
}

func (ss *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	if !ss.sessionStore.Delete(id) {
		return serverutils.NewNotFoundError("Session not found")
	}

	ss.logger.Info("Session", "Session deleted", map[string]interface{}{
		"session_id": id.String(),
	})
	ss.publishLifecycleEvent(ctx, constant.EventSessionDeleted, id)
	return nil
}

func (ss *sessionService) Summary(_ context.Context, id uuid.UUID) (*store.Summary, error) {
	return ss.sessionStore.Summarize(id)
}

func (ss *sessionService) UploadExpertDocuments(_ context.Context, id uuid.UUID, docs []dto.UploadedDocument) (*dto.UploadDocumentsResponse, error) {
	if !ss.sessionStore.Exists(id) {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	contents := make([]string, 0, len(docs))
	for _, doc := range docs {
		text, err := extractDocumentText(doc)
		if err != nil {
			return nil, serverutils.NewValidationError("could not extract text from " + doc.Name + ": " + err.Error())
		}
		contents = append(contents, text)
	}

	if err := ss.sessionStore.SetExpertDocuments(id, contents); err != nil {
		return nil, serverutils.NewNotFoundError("Session not found")
	}

	ss.logger.Info("Session", "Expert documents attached", map[string]interface{}{
		"session_id": id.String(),
		"count":      len(contents),
	})

	return &dto.UploadDocumentsResponse{Status: "documents uploaded", Count: len(contents)}, nil
}

// extractDocumentText pulls plain text out of an uploaded document. PDFs go
// through the pdf reader; everything else is treated as UTF-8 text.
func extractDocumentText(doc dto.UploadedDocument) (string, error) {
	isPDF := doc.ContentType == "application/pdf" || strings.HasSuffix(strings.ToLower(doc.Name), ".pdf")
	if !isPDF {
		return string(doc.Data), nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (ss *sessionService) publishLifecycleEvent(ctx context.Context, eventType string, id uuid.UUID) {
	if ss.natsPub == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       map[string]interface{}{"session_id": id.String()},
		OccurredAt: time.Now(),
	}
	if err := ss.natsPub.Publish(ctx, event); err != nil {
		ss.logger.Warn("Session", "Failed to publish lifecycle event", map[string]interface{}{
			"session_id": id.String(),
			"event":      eventType,
			"error":      err.Error(),
		})
	}
}
